package services

import (
	"context"
	"testing"
	"time"

	"github.com/martapp/backend/internal/models"
	"github.com/martapp/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoritesFixture(t *testing.T) (*FavoritesService, *store.CartStore) {
	t.Helper()
	db := newTestDB(t)
	favorites, err := store.NewFavoriteStore(db)
	require.NoError(t, err)
	cart, err := store.NewCartStore(db)
	require.NoError(t, err)
	return NewFavoritesService(favorites, cart), cart
}

func favRedShoe() models.FavoriteProduct {
	return models.FavoriteProduct{ID: 1, Title: "Red Shoe", Image: "https://img/1.png", Price: 49.99}
}

func TestToggleFavorite(t *testing.T) {
	svc, _ := newFavoritesFixture(t)

	on, err := svc.Toggle(favRedShoe())
	require.NoError(t, err)
	assert.True(t, on)
	require.Len(t, svc.Favorites(), 1)

	off, err := svc.Toggle(favRedShoe())
	require.NoError(t, err)
	assert.False(t, off)
	assert.Empty(t, svc.Favorites())
}

func TestToggleStreamsMembership(t *testing.T) {
	svc, _ := newFavoritesFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := svc.WatchIsFavorite(ctx, 1)

	recv := func() bool {
		select {
		case v := <-ch:
			return v
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for membership")
			panic("unreachable")
		}
	}

	require.False(t, recv())

	_, err := svc.Toggle(favRedShoe())
	require.NoError(t, err)
	assert.True(t, recv())

	_, err = svc.Toggle(favRedShoe())
	require.NoError(t, err)
	assert.False(t, recv())
}

func TestToggleSyncsCartFlag(t *testing.T) {
	svc, cart := newFavoritesFixture(t)

	require.NoError(t, cart.InsertOrReplace(&models.CartItem{
		ProductID: 1, Title: "Red Shoe", Price: 49.99, Quantity: 1, TotalPrice: 49.99,
	}))

	_, err := svc.Toggle(favRedShoe())
	require.NoError(t, err)

	item, err := cart.GetByProductID(1)
	require.NoError(t, err)
	assert.True(t, item.IsFavorite)

	_, err = svc.Toggle(favRedShoe())
	require.NoError(t, err)

	item, err = cart.GetByProductID(1)
	require.NoError(t, err)
	assert.False(t, item.IsFavorite)
}

func TestToggleWithoutCartLine(t *testing.T) {
	svc, _ := newFavoritesFixture(t)

	// No matching cart line: the toggle still succeeds.
	on, err := svc.Toggle(favRedShoe())
	require.NoError(t, err)
	assert.True(t, on)
}
