package store

import (
	"fmt"

	"github.com/martapp/backend/internal/models"
	"gorm.io/gorm"
)

// ReceiptStore owns the receipts table. Receipts are append-only.
type ReceiptStore struct {
	db *gorm.DB
}

func NewReceiptStore(db *gorm.DB) *ReceiptStore {
	return &ReceiptStore{db: db}
}

func (s *ReceiptStore) Create(receipt *models.Receipt) error {
	if err := s.db.Create(receipt).Error; err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

func (s *ReceiptStore) ListByUser(userID uint) ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, nil
}
