package usecase

import (
	"testing"
	"time"

	authdomain "meetup-backend/internal/auth/domain"
	authdto "meetup-backend/internal/auth/dto"
	"meetup-backend/pkg/config"
)

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users         map[string]*authdomain.User // by ID
	byDevice      map[string]string           // deviceID -> userID
	refreshTokens map[string]*authdomain.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         make(map[string]*authdomain.User),
		byDevice:      make(map[string]string),
		refreshTokens: make(map[string]*authdomain.RefreshToken),
	}
}

func (f *fakeUserRepo) Create(user *authdomain.User) error {
	user.ID = "user-" + user.DeviceID
	f.users[user.ID] = user
	f.byDevice[user.DeviceID] = user.ID
	return nil
}

func (f *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByDeviceID(deviceID string) (*authdomain.User, error) {
	id, ok := f.byDevice[deviceID]
	if !ok {
		return nil, nil
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) Update(user *authdomain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error {
	f.refreshTokens[token.Token] = token
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return f.refreshTokens[token], nil
}

func (f *fakeUserRepo) DeleteRefreshToken(token string) error {
	delete(f.refreshTokens, token)
	return nil
}

func (f *fakeUserRepo) ReplaceRefreshToken(token *authdomain.RefreshToken) error {
	f.refreshTokens[token.Token] = token
	return nil
}

// fakePushRepo is an in-memory PushTokenRepository
type fakePushRepo struct {
	tokens map[string]authdomain.PushToken // by token
}

func newFakePushRepo() *fakePushRepo {
	return &fakePushRepo{tokens: make(map[string]authdomain.PushToken)}
}

func (f *fakePushRepo) SaveToken(userID, token, platform, deviceInfo string) error {
	f.tokens[token] = authdomain.PushToken{UserID: userID, Token: token, Platform: platform, DeviceInfo: deviceInfo}
	return nil
}

func (f *fakePushRepo) GetTokensByUserID(userID string) ([]authdomain.PushToken, error) {
	var out []authdomain.PushToken
	for _, t := range f.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakePushRepo) DeleteToken(token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakePushRepo) DeleteTokensByUserID(userID string) error {
	for token, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, token)
		}
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func TestDeviceSignIn_CreatesThenReuses(t *testing.T) {
	repo := newFakeUserRepo()
	u := NewAuthUsecase(repo, newFakePushRepo(), testConfig())

	first, err := u.DeviceSignIn(&authdto.DeviceSignInRequest{DeviceID: "device-abc", Nickname: "alice"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if first.User.Nickname != "alice" {
		t.Fatalf("want nickname alice, got %q", first.User.Nickname)
	}

	second, err := u.DeviceSignIn(&authdto.DeviceSignInRequest{DeviceID: "device-abc"})
	if err != nil {
		t.Fatalf("second sign in: %v", err)
	}
	if second.User.ID != first.User.ID {
		t.Fatal("same device must map to the same user")
	}
}

func TestDeviceSignIn_TokenRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	u := NewAuthUsecase(repo, newFakePushRepo(), testConfig())

	resp, err := u.DeviceSignIn(&authdto.DeviceSignInRequest{DeviceID: "device-abc"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	user, err := u.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.ID != resp.User.ID {
		t.Fatalf("want user %s, got %s", resp.User.ID, user.ID)
	}
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	u := NewAuthUsecase(repo, newFakePushRepo(), testConfig())

	resp, _ := u.DeviceSignIn(&authdto.DeviceSignInRequest{DeviceID: "device-abc"})

	if _, err := u.ValidateToken(resp.RefreshToken); err == nil {
		t.Fatal("refresh token must not pass access-token validation")
	}
}

func TestRefreshToken_RotatesAndRevokes(t *testing.T) {
	repo := newFakeUserRepo()
	u := NewAuthUsecase(repo, newFakePushRepo(), testConfig())

	resp, _ := u.DeviceSignIn(&authdto.DeviceSignInRequest{DeviceID: "device-abc"})

	refreshed, err := u.RefreshToken(resp.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.User.ID != resp.User.ID {
		t.Fatal("refresh must keep the same user")
	}

	// The old token was rotated out and must not work again
	if _, err := u.RefreshToken(resp.RefreshToken); err == nil {
		t.Fatal("used refresh token must be revoked")
	}
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	u := NewAuthUsecase(repo, newFakePushRepo(), testConfig())

	resp, _ := u.DeviceSignIn(&authdto.DeviceSignInRequest{DeviceID: "device-abc"})

	if err := u.Logout(resp.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := u.RefreshToken(resp.RefreshToken); err == nil {
		t.Fatal("refresh after logout must fail")
	}
}
