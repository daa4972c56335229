package dto

import "github.com/martapp/backend/internal/catalog"

type AddToCartRequest struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type ToggleFavoriteRequest struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
}

type ToggleFavoriteResponse struct {
	ProductID  int  `json:"product_id"`
	IsFavorite bool `json:"is_favorite"`
}
