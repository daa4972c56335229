package models

// FavoriteProduct is a favorited catalog product. Membership is a plain set:
// the primary key is the remote product id itself.
type FavoriteProduct struct {
	ID    int     `gorm:"primaryKey" json:"id"`
	Title string  `gorm:"size:255;not null" json:"title"`
	Image string  `gorm:"type:text" json:"image"`
	Price float64 `gorm:"not null" json:"price"`
}
