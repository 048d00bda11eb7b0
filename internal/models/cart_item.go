package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one line of a user's cart: a denormalized snapshot of the
// product at add time plus a mutable quantity. (user_id, product_id) is
// unique, so a cart never holds two lines for the same product.
type CartItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID  uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	NameJSON   JSON           `gorm:"type:json;not null" json:"name"` // snapshot
	PriceAmount Money         `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // snapshot
	Image      string         `gorm:"type:varchar(500)" json:"image"`   // snapshot
	CategoryID uint           `gorm:"index" json:"category_id"`         // snapshot
	Quantity   int            `gorm:"not null" json:"quantity"`         // always within [1,99]
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
