package models

// Preference is a single key-value pair of the session/preference set
// (user_phone, user_id, dark_mode).
type Preference struct {
	Key   string `gorm:"primaryKey;size:50" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}
