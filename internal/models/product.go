package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog product. Stock is the authoritative remaining
// quantity; cart mutations always re-read it instead of trusting a cached
// snapshot.
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`
	NameJSON        JSON           `gorm:"type:json;not null" json:"name"`    // localized name
	DescriptionJSON JSON           `gorm:"type:json" json:"description"`      // localized description
	PriceAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`
	Image           string         `gorm:"type:varchar(500)" json:"image"`
	Images          StringArray    `gorm:"type:json" json:"images"`
	Tags            StringArray    `gorm:"type:json" json:"tags"`
	Stock           int            `gorm:"not null;default:0" json:"stock"`
	RatingAvg       float64        `gorm:"not null;default:0" json:"rating_avg"`   // recomputed from published reviews
	RatingCount     int            `gorm:"not null;default:0" json:"rating_count"` // recomputed from published reviews
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
