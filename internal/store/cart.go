package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/martapp/backend/internal/models"
	"github.com/martapp/backend/internal/stream"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartStore owns the cart_items table. Both streams re-emit the full result
// set after every mutation.
type CartStore struct {
	db        *gorm.DB
	items     *stream.State[[]models.CartItem]
	favorites *stream.State[[]models.CartItem]
}

func NewCartStore(db *gorm.DB) (*CartStore, error) {
	s := &CartStore{
		db:        db,
		items:     stream.NewState[[]models.CartItem](nil),
		favorites: stream.NewState[[]models.CartItem](nil),
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CartStore) refresh() error {
	var items []models.CartItem
	if err := s.db.Order("id").Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load cart items: %w", err)
	}
	s.items.Set(items)

	var favs []models.CartItem
	if err := s.db.Where("is_favorite = ?", true).Order("id").Find(&favs).Error; err != nil {
		return fmt.Errorf("failed to load favorite cart items: %w", err)
	}
	s.favorites.Set(favs)
	return nil
}

// InsertOrReplace upserts a line keyed by product id. An existing line for
// the same product is replaced wholesale; quantities are never merged here.
func (s *CartStore) InsertOrReplace(item *models.CartItem) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "image", "price", "quantity", "stock", "rating", "total_price", "is_favorite",
		}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return s.refresh()
}

func (s *CartStore) GetByProductID(productID int) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.Where("product_id = ?", productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}
	return &item, nil
}

func (s *CartStore) UpdateQuantity(productID, quantity int, totalPrice float64) error {
	result := s.db.Model(&models.CartItem{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{"quantity": quantity, "total_price": totalPrice})
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return s.refresh()
}

func (s *CartStore) Remove(productID int) error {
	if err := s.db.Where("product_id = ?", productID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return s.refresh()
}

func (s *CartStore) SetFavorite(productID int, favorite bool) error {
	result := s.db.Model(&models.CartItem{}).
		Where("product_id = ?", productID).
		Update("is_favorite", favorite)
	if result.Error != nil {
		return fmt.Errorf("failed to update favorite flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return s.refresh()
}

// Clear deletes every line, used when checkout completes.
func (s *CartStore) Clear() error {
	if err := s.db.Where("product_id IS NOT NULL").Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return s.refresh()
}

// Items returns the current cart contents.
func (s *CartStore) Items() []models.CartItem {
	return s.items.Get()
}

func (s *CartStore) Watch(ctx context.Context) <-chan []models.CartItem {
	return s.items.Watch(ctx)
}

func (s *CartStore) WatchFavorites(ctx context.Context) <-chan []models.CartItem {
	return s.favorites.Watch(ctx)
}
