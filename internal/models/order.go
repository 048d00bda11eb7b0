package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is the immutable record produced at checkout completion. It embeds a
// snapshot of the cart lines, the computed totals, the shipping and payment
// selections and the order note at time of submission.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	Status         string         `gorm:"index;not null" json:"status"`
	Currency       string         `gorm:"not null" json:"currency"`
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`
	ShippingFee    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	ShippingMethod string         `gorm:"type:varchar(20);not null" json:"shipping_method"`
	PaymentMethod  string         `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentRef     string         `gorm:"type:varchar(40)" json:"payment_ref,omitempty"` // CliQ reference code
	Note           string         `gorm:"type:varchar(600)" json:"note,omitempty"`
	CustomerName   string         `gorm:"type:varchar(120);not null" json:"customer_name"`
	Phone          string         `gorm:"type:varchar(20);not null" json:"phone"` // normalized +962 form
	City           string         `gorm:"type:varchar(40);not null" json:"city"`
	Address        string         `gorm:"type:varchar(500);not null" json:"address"`
	ClientIP       string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`
	ConfirmedAt    *time.Time     `gorm:"index" json:"confirmed_at"`
	ShippedAt      *time.Time     `gorm:"index" json:"shipped_at"`
	DeliveredAt    *time.Time     `gorm:"index" json:"delivered_at"`
	CanceledAt     *time.Time     `gorm:"index" json:"canceled_at"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
