package dto

import authdomain "meetup-backend/internal/auth/domain"

type DeviceSignInRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	Nickname string `json:"nickname"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RegisterPushTokenRequest struct {
	Token      string `json:"token" binding:"required"`
	Platform   string `json:"platform"`
	DeviceInfo string `json:"device_info"`
}

type UpdateProfileRequest struct {
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

type TokenResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *authdomain.User `json:"user"`
}
