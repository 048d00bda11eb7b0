package repository

import (
	"errors"

	"github.com/anta-store/anta-api/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository is the category data access interface.
type CategoryRepository interface {
	ListAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// GormCategoryRepository is the GORM implementation.
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// ListAll returns every category in display order.
func (r *GormCategoryRepository) ListAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("sort_order asc, id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID returns a category by ID, nil when absent.
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetBySlug returns a category by slug, nil when absent.
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a category.
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update applies a partial update.
func (r *GormCategoryRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Category{}).Where("id = ?", id).Updates(updates).Error
}

// Delete soft-deletes a category.
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}
