package models

import (
	"time"

	"gorm.io/gorm"
)

// WishlistItem marks a product as saved by a user. The wishlist is a set:
// (user_id, product_id) is unique.
type WishlistItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint           `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
