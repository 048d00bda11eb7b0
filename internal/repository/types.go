package repository

import "time"

// ProductListFilter filters product listings.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	OnlyActive   bool
	InStockOnly  bool
	WithCategory bool
}

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReviewListFilter filters review listings.
type ReviewListFilter struct {
	Page          int
	PageSize      int
	ProductID     uint
	UserID        uint
	OnlyPublished bool
	WithUser      bool
}
