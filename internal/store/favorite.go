package store

import (
	"context"
	"fmt"

	"github.com/martapp/backend/internal/models"
	"github.com/martapp/backend/internal/stream"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteStore owns the favorite_products table, a set keyed by product id.
type FavoriteStore struct {
	db    *gorm.DB
	state *stream.State[[]models.FavoriteProduct]
}

func NewFavoriteStore(db *gorm.DB) (*FavoriteStore, error) {
	s := &FavoriteStore{
		db:    db,
		state: stream.NewState[[]models.FavoriteProduct](nil),
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FavoriteStore) refresh() error {
	var favs []models.FavoriteProduct
	if err := s.db.Order("id").Find(&favs).Error; err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	s.state.Set(favs)
	return nil
}

func (s *FavoriteStore) Insert(product *models.FavoriteProduct) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "image", "price"}),
	}).Create(product).Error
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return s.refresh()
}

func (s *FavoriteStore) Delete(productID int) error {
	if err := s.db.Delete(&models.FavoriteProduct{}, "id = ?", productID).Error; err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return s.refresh()
}

// IsFavorite reports current membership.
func (s *FavoriteStore) IsFavorite(productID int) (bool, error) {
	var count int64
	if err := s.db.Model(&models.FavoriteProduct{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// Favorites returns the current list.
func (s *FavoriteStore) Favorites() []models.FavoriteProduct {
	return s.state.Get()
}

func (s *FavoriteStore) Watch(ctx context.Context) <-chan []models.FavoriteProduct {
	return s.state.Watch(ctx)
}

// WatchIsFavorite derives a membership stream for one product from the list
// stream, emitting only on changes.
func (s *FavoriteStore) WatchIsFavorite(ctx context.Context, productID int) <-chan bool {
	out := make(chan bool, 1)
	in := s.state.Watch(ctx)

	go func() {
		defer close(out)
		emitted := false
		var last bool
		for favs := range in {
			current := containsProduct(favs, productID)
			if emitted && current == last {
				continue
			}
			emitted, last = true, current
			select {
			case out <- current:
			default:
				select {
				case <-out:
				default:
				}
				out <- current
			}
		}
	}()

	return out
}

func containsProduct(favs []models.FavoriteProduct, productID int) bool {
	for _, f := range favs {
		if f.ID == productID {
			return true
		}
	}
	return false
}
