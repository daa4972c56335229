package models

// CartItem is one line of the shopping cart, keyed by the remote product id.
// TotalPrice is always Price * Quantity; the cart flow recomputes it on every
// mutation rather than trusting the caller.
type CartItem struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int     `gorm:"not null;uniqueIndex" json:"product_id"`
	Title      string  `gorm:"size:255;not null" json:"title"`
	Image      string  `gorm:"type:text" json:"image"`
	Price      float64 `gorm:"not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Stock      int     `gorm:"default:0" json:"stock"`
	Rating     float64 `gorm:"default:0" json:"rating"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`
	IsFavorite bool    `gorm:"default:false" json:"is_favorite"`
}
