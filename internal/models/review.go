package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a per-product customer review. One review per (user, product);
// only published reviews feed the product rating aggregate.
type Review struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`
	ProductID   uint           `gorm:"not null;uniqueIndex:idx_review_user_product" json:"product_id"`
	Rating      int            `gorm:"not null" json:"rating"` // 1..5
	Body        string         `gorm:"type:varchar(2000)" json:"body"`
	IsPublished bool           `gorm:"not null;default:true;index" json:"is_published"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (Review) TableName() string {
	return "reviews"
}
