package usecase

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authdomain "meetup-backend/internal/auth/domain"
	authdto "meetup-backend/internal/auth/dto"
	"meetup-backend/internal/auth/repository"
	"meetup-backend/pkg/config"
)

// AuthUsecase defines the interface for authentication business logic
type AuthUsecase interface {
	DeviceSignIn(req *authdto.DeviceSignInRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	ValidateToken(accessToken string) (*authdomain.User, error)
	Logout(refreshToken string) error
	Me(userID string) (*authdomain.User, error)
	UpdateProfile(userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error)
	RegisterPushToken(userID string, req *authdto.RegisterPushTokenRequest) error
	UnregisterPushToken(token string) error
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	pushRepo repository.PushTokenRepository
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, pushRepo repository.PushTokenRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		pushRepo: pushRepo,
		config:   cfg,
	}
}

// DeviceSignIn finds or creates the user bound to the device ID and issues tokens
func (u *authUsecase) DeviceSignIn(req *authdto.DeviceSignInRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByDeviceID(req.DeviceID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		nickname := req.Nickname
		if nickname == "" {
			nickname = "user-" + req.DeviceID[:min(8, len(req.DeviceID))]
		}
		user = &authdomain.User{
			DeviceID: req.DeviceID,
			Nickname: nickname,
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else if req.Nickname != "" && req.Nickname != user.Nickname {
		user.Nickname = req.Nickname
		if err := u.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	return u.generateTokens(user)
}

func (u *authUsecase) RefreshToken(refreshToken string) (*authdto.TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != "refresh" {
		return nil, errors.New("invalid token type")
	}

	// The token must still be registered (not revoked by logout)
	stored, err := u.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || time.Now().After(stored.ExpiresAt) {
		return nil, errors.New("refresh token expired or revoked")
	}

	user, err := u.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	// Rotate: revoke the old token before issuing new ones
	if err := u.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	return u.generateTokens(user)
}

func (u *authUsecase) ValidateToken(accessToken string) (*authdomain.User, error) {
	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != "access" {
		return nil, errors.New("invalid token type")
	}

	userID, _ := claims["sub"].(string)
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (u *authUsecase) Logout(refreshToken string) error {
	return u.userRepo.DeleteRefreshToken(refreshToken)
}

func (u *authUsecase) Me(userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) RegisterPushToken(userID string, req *authdto.RegisterPushTokenRequest) error {
	return u.pushRepo.SaveToken(userID, req.Token, req.Platform, req.DeviceInfo)
}

func (u *authUsecase) UnregisterPushToken(token string) error {
	return u.pushRepo.DeleteToken(token)
}

// generateTokens issues an access/refresh token pair and persists the refresh token
func (u *authUsecase) generateTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":  user.ID,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(u.config.JWTAccessExpiry).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.MapClaims{
		"sub":  user.ID,
		"type": "refresh",
		"jti":  uuid.New().String(),
		"iat":  now.Unix(),
		"exp":  now.Add(u.config.JWTRefreshExpiry).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.ReplaceRefreshToken(&authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: now.Add(u.config.JWTRefreshExpiry),
	}); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
