package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/martapp/backend/internal/password"
	"github.com/martapp/backend/internal/store"
)

var (
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")
)

// SettingsService handles profile edits, password changes and the theme flag.
type SettingsService struct {
	users   *store.UserStore
	session *store.SessionStore
}

func NewSettingsService(users *store.UserStore, session *store.SessionStore) *SettingsService {
	return &SettingsService{users: users, session: session}
}

// UpdateProfile validates and persists a new name and phone. When the edited
// user is the signed-in one, the stored session token follows the new phone.
func (s *SettingsService) UpdateProfile(userID uint, name, phone string) error {
	if name == "" {
		return ErrNameRequired
	}
	if !validPhone(phone) {
		return ErrInvalidPhone
	}

	if err := s.users.UpdateProfile(userID, name, phone); err != nil {
		return err
	}

	if s.session.Snapshot().UserID == userID {
		if err := s.session.SetPhone(phone); err != nil {
			return fmt.Errorf("profile updated but session token not refreshed: %w", err)
		}
	}

	slog.Info("profile updated", "user_id", userID)
	return nil
}

// ChangePassword verifies the current password, requires a matching
// confirmation and persists the new hash. The user is looked up by id.
func (s *SettingsService) ChangePassword(userID uint, oldPassword, newPassword, confirm string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}

	if !password.Verify(oldPassword, user.Password) {
		return ErrWrongPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.users.UpdatePassword(userID, hash); err != nil {
		return err
	}

	slog.Info("password changed", "user_id", userID)
	return nil
}

// SetDarkMode persists the theme flag.
func (s *SettingsService) SetDarkMode(enabled bool) error {
	return s.session.SetDarkMode(enabled)
}

// Session returns the current session snapshot.
func (s *SettingsService) Session() store.Snapshot {
	return s.session.Snapshot()
}

// WatchSession streams session snapshots, dark-mode flag included.
func (s *SettingsService) WatchSession(ctx context.Context) <-chan store.Snapshot {
	return s.session.Watch(ctx)
}
