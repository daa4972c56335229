package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Receipt records a completed checkout: the grand total and a snapshot of the
// cart lines at the moment the cart was cleared.
type Receipt struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	Total     float64        `gorm:"not null" json:"total"`
	Items     datatypes.JSON `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}
