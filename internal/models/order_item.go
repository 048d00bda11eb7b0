package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is one snapshotted line of an order.
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OrderID    uint           `gorm:"index;not null" json:"order_id"`
	ProductID  uint           `gorm:"index;not null" json:"product_id"`
	NameJSON   JSON           `gorm:"type:json;not null" json:"name"` // snapshot
	Image      string         `gorm:"type:varchar(500)" json:"image"` // snapshot
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
