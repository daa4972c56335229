package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/martapp/backend/internal/catalog"
	"github.com/martapp/backend/internal/models"
	"github.com/martapp/backend/internal/store"
	"github.com/martapp/backend/internal/stream"
	"gorm.io/datatypes"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartItemNotFound = store.ErrCartItemNotFound
)

// CartService mutates the cart store and publishes a one-shot add result
// signal next to the store's stateful cart stream.
type CartService struct {
	cart     *store.CartStore
	receipts *store.ReceiptStore

	// addResult carries success/failure of AddToCart to current subscribers
	// only; late subscribers never see past results.
	addResult *stream.Signal[bool]

	checkoutDelay time.Duration
}

func NewCartService(cart *store.CartStore, receipts *store.ReceiptStore, checkoutDelay time.Duration) *CartService {
	return &CartService{
		cart:          cart,
		receipts:      receipts,
		addResult:     stream.NewSignal[bool](),
		checkoutDelay: checkoutDelay,
	}
}

// AddToCart upserts a line for the product. The line total is derived here
// from unit price and quantity; an existing line for the same product is
// replaced, not merged.
func (s *CartService) AddToCart(product catalog.Product, quantity int) error {
	if quantity < 1 {
		s.addResult.Emit(false)
		return ErrInvalidQuantity
	}

	item := models.CartItem{
		ProductID:  product.ID,
		Title:      product.Title,
		Image:      product.Image,
		Price:      product.Price,
		Quantity:   quantity,
		Stock:      product.Stock,
		Rating:     product.Rating,
		TotalPrice: product.Price * float64(quantity),
	}

	if err := s.cart.InsertOrReplace(&item); err != nil {
		slog.Error("failed to add to cart", "product_id", product.ID, "error", err)
		s.addResult.Emit(false)
		return err
	}

	slog.Info("added to cart", "product_id", product.ID, "quantity", quantity)
	s.addResult.Emit(true)
	return nil
}

// UpdateQuantity sets a line's quantity, recomputing the total from the
// stored unit price. A quantity below 1 removes the line instead of storing
// a zero or negative count.
func (s *CartService) UpdateQuantity(productID, quantity int) error {
	if quantity < 1 {
		return s.Remove(productID)
	}

	item, err := s.cart.GetByProductID(productID)
	if err != nil {
		return err
	}

	return s.cart.UpdateQuantity(productID, quantity, item.Price*float64(quantity))
}

func (s *CartService) Remove(productID int) error {
	return s.cart.Remove(productID)
}

func (s *CartService) Clear() error {
	return s.cart.Clear()
}

// Items returns the current cart contents.
func (s *CartService) Items() []models.CartItem {
	return s.cart.Items()
}

func (s *CartService) Watch(ctx context.Context) <-chan []models.CartItem {
	return s.cart.Watch(ctx)
}

// WatchAddResult subscribes to the one-shot add result signal.
func (s *CartService) WatchAddResult(ctx context.Context) <-chan bool {
	return s.addResult.Subscribe(ctx)
}

// Checkout simulates payment processing, persists a receipt with a snapshot
// of the lines, then clears the cart. The delay stands in for a real payment
// gateway call and honors cancellation.
func (s *CartService) Checkout(ctx context.Context, userID uint) (*models.Receipt, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	select {
	case <-time.After(s.checkoutDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}

	snapshot, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot cart lines: %w", err)
	}

	receipt := models.Receipt{
		ID:     uuid.New(),
		UserID: userID,
		Total:  total,
		Items:  datatypes.JSON(snapshot),
	}
	if err := s.receipts.Create(&receipt); err != nil {
		return nil, err
	}

	if err := s.cart.Clear(); err != nil {
		return nil, err
	}

	slog.Info("checkout completed", "receipt_id", receipt.ID, "total", total)
	return &receipt, nil
}

// Receipts lists a user's past checkouts, newest first.
func (s *CartService) Receipts(userID uint) ([]models.Receipt, error) {
	return s.receipts.ListByUser(userID)
}
