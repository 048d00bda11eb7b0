package repository

import (
	"errors"
	"fmt"

	"github.com/anta-store/anta-api/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the product data access interface.
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetStock(id uint) (int, bool, error)
	Create(product *models.Product) error
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	DecrementStock(id uint, quantity int) (int64, error)
	ListLowStock(threshold int) ([]models.Product, error)
	UpdateRating(id uint, avg float64, count int) error
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository is the GORM implementation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List returns a page of products plus the total count.
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.InStockOnly {
		query = query.Where("stock > 0")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("slug LIKE ? OR name_json LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithCategory {
		query = query.Preload("Category")
	}
	var products []models.Product
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("sort_order asc, id desc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID returns a product by ID, nil when absent.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug returns a product by slug, nil when absent.
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetStock reads the live stock of a product. The second return reports
// whether the product exists and is active.
func (r *GormProductRepository) GetStock(id uint) (int, bool, error) {
	var row struct {
		Stock    int
		IsActive bool
	}
	err := r.db.Model(&models.Product{}).
		Select("stock", "is_active").
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !row.IsActive {
		return 0, false, nil
	}
	return row.Stock, true, nil
}

// Create inserts a product.
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update applies a partial update.
func (r *GormProductRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error
}

// Delete soft-deletes a product.
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// DecrementStock subtracts quantity from stock only when enough remains,
// returning the affected row count. Zero rows means insufficient stock.
func (r *GormProductRepository) DecrementStock(id uint, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("invalid decrement quantity: %d", quantity)
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND is_active = ? AND stock >= ?", id, true, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RestoreStock returns quantity units to stock, used when an order is
// canceled.
func (r *GormProductRepository) RestoreStock(id uint, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}

// ListLowStock returns active products at or below the threshold.
func (r *GormProductRepository) ListLowStock(threshold int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("is_active = ? AND stock <= ?", true, threshold).
		Order("stock asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateRating writes the recomputed review aggregate.
func (r *GormProductRepository) UpdateRating(id uint, avg float64, count int) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating_avg":   avg,
		"rating_count": count,
	}).Error
}
