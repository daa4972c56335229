package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/martapp/backend/internal/models"
	"github.com/martapp/backend/internal/store"
)

// FavoritesService toggles set membership in the favorites store and keeps
// the favorite flag on matching cart lines in sync.
type FavoritesService struct {
	favorites *store.FavoriteStore
	cart      *store.CartStore
}

func NewFavoritesService(favorites *store.FavoriteStore, cart *store.CartStore) *FavoritesService {
	return &FavoritesService{favorites: favorites, cart: cart}
}

// Toggle flips the product's membership: inserts when absent, deletes when
// present. Returns the new membership state.
func (s *FavoritesService) Toggle(product models.FavoriteProduct) (bool, error) {
	favorite, err := s.favorites.IsFavorite(product.ID)
	if err != nil {
		return false, err
	}

	if favorite {
		if err := s.favorites.Delete(product.ID); err != nil {
			return true, err
		}
	} else {
		if err := s.favorites.Insert(&product); err != nil {
			return false, err
		}
	}

	now := !favorite
	// Mirror the flag onto the cart line if the product is carted.
	if err := s.cart.SetFavorite(product.ID, now); err != nil && !errors.Is(err, store.ErrCartItemNotFound) {
		slog.Error("failed to sync favorite flag to cart", "product_id", product.ID, "error", err)
	}

	return now, nil
}

// Favorites returns the current list.
func (s *FavoritesService) Favorites() []models.FavoriteProduct {
	return s.favorites.Favorites()
}

func (s *FavoritesService) Watch(ctx context.Context) <-chan []models.FavoriteProduct {
	return s.favorites.Watch(ctx)
}

// IsFavorite reports current membership for one product.
func (s *FavoritesService) IsFavorite(productID int) (bool, error) {
	return s.favorites.IsFavorite(productID)
}

// WatchIsFavorite streams membership changes for one product.
func (s *FavoritesService) WatchIsFavorite(ctx context.Context, productID int) <-chan bool {
	return s.favorites.WatchIsFavorite(ctx, productID)
}
