package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/martapp/backend/internal/config"
	"github.com/martapp/backend/internal/dto"
	"github.com/martapp/backend/internal/models"
	"github.com/martapp/backend/internal/password"
	"github.com/martapp/backend/internal/store"
)

var (
	ErrPhoneTaken = errors.New("an account with this phone number already exists")
	// ErrInvalidCredentials covers both unknown phone and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidPhone       = errors.New("phone number must be 11 digits")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

// AuthService orchestrates sign-up, login and logout over the user and
// session stores.
type AuthService struct {
	users   *store.UserStore
	session *store.SessionStore
	cfg     *config.Config
}

func NewAuthService(users *store.UserStore, session *store.SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{users: users, session: session, cfg: cfg}
}

// SignUp registers a new account. It does not establish a session: the
// client navigates to login after a successful sign-up.
func (s *AuthService) SignUp(name, phone, plaintext string) (*dto.UserResponse, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if !validPhone(phone) {
		return nil, ErrInvalidPhone
	}
	if len(plaintext) < 8 {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.users.GetByPhone(phone); err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Phone:    phone,
		Password: hash,
	}
	if err := s.users.Create(&user); err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return mapUserToResponse(&user), nil
}

// Login verifies credentials, persists the session token and returns an
// access token for the API surface.
func (s *AuthService) Login(phone, plaintext string) (*dto.AuthResponse, error) {
	user, err := s.users.GetByPhone(phone)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(plaintext, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.session.SetPhone(user.Phone); err != nil {
		return nil, err
	}
	if err := s.session.SetUserID(user.ID); err != nil {
		return nil, err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return &dto.AuthResponse{
		AccessToken: token,
		User:        *mapUserToResponse(user),
	}, nil
}

// Logout clears the session unconditionally; logging out twice is a no-op.
func (s *AuthService) Logout() error {
	return s.session.Clear()
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"phone": user.Phone,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func mapUserToResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}
}

func validPhone(phone string) bool {
	if len(phone) != 11 {
		return false
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
