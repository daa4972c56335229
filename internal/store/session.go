// Package store holds the persistence layer: each store exclusively owns one
// table of the embedded database and republishes its full state through a
// stream after every mutation.
package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/martapp/backend/internal/models"
	"github.com/martapp/backend/internal/stream"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preference keys of the session set. They are written independently and
// cleared together.
const (
	keyUserPhone = "user_phone"
	keyUserID    = "user_id"
	keyDarkMode  = "dark_mode"
)

// Snapshot is the current session state. A non-empty Phone marks the
// signed-in state; the navigation layer keys off that single field.
type Snapshot struct {
	Phone    string `json:"phone"`
	UserID   uint   `json:"user_id"`
	DarkMode bool   `json:"dark_mode"`
}

func (s Snapshot) SignedIn() bool {
	return s.Phone != ""
}

// SessionStore persists the session set in the preferences table.
type SessionStore struct {
	db    *gorm.DB
	state *stream.State[Snapshot]
}

func NewSessionStore(db *gorm.DB) (*SessionStore, error) {
	s := &SessionStore{db: db}
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	s.state = stream.NewState(snap)
	return s, nil
}

func (s *SessionStore) load() (Snapshot, error) {
	var prefs []models.Preference
	if err := s.db.Find(&prefs).Error; err != nil {
		return Snapshot{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	var snap Snapshot
	for _, p := range prefs {
		switch p.Key {
		case keyUserPhone:
			snap.Phone = p.Value
		case keyUserID:
			if id, err := strconv.ParseUint(p.Value, 10, 64); err == nil {
				snap.UserID = uint(id)
			}
		case keyDarkMode:
			snap.DarkMode = p.Value == "true"
		}
	}
	return snap, nil
}

func (s *SessionStore) set(key, value string) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Preference{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return s.refresh()
}

func (s *SessionStore) refresh() error {
	snap, err := s.load()
	if err != nil {
		return err
	}
	s.state.Set(snap)
	return nil
}

// SetPhone stores the session token without disturbing the other keys.
func (s *SessionStore) SetPhone(phone string) error {
	return s.set(keyUserPhone, phone)
}

func (s *SessionStore) SetUserID(id uint) error {
	return s.set(keyUserID, strconv.FormatUint(uint64(id), 10))
}

func (s *SessionStore) SetDarkMode(enabled bool) error {
	return s.set(keyDarkMode, strconv.FormatBool(enabled))
}

// Clear removes the entire session set in one transaction. A subsequent read
// observes the signed-out state.
func (s *SessionStore) Clear() error {
	err := s.db.
		Where("key IN ?", []string{keyUserPhone, keyUserID, keyDarkMode}).
		Delete(&models.Preference{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return s.refresh()
}

// Snapshot returns the current session state.
func (s *SessionStore) Snapshot() Snapshot {
	return s.state.Get()
}

// Watch emits the current snapshot immediately and again after every write.
func (s *SessionStore) Watch(ctx context.Context) <-chan Snapshot {
	return s.state.Watch(ctx)
}
