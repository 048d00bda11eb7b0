package repository

import (
	"errors"

	"github.com/anta-store/anta-api/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository is the review data access interface.
type ReviewRepository interface {
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	GetByID(id uint) (*models.Review, error)
	GetByUserAndProduct(userID, productID uint) (*models.Review, error)
	Create(review *models.Review) error
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	PublishedAggregate(productID uint) (float64, int, error)
	WithTx(tx *gorm.DB) *GormReviewRepository
}

// GormReviewRepository is the GORM implementation.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a review repository.
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormReviewRepository) WithTx(tx *gorm.DB) *GormReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// List returns a page of reviews plus the total count.
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithUser {
		query = query.Preload("User")
	}
	var reviews []models.Review
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// GetByID returns a review by ID, nil when absent.
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// GetByUserAndProduct returns the user's review of a product, nil when absent.
func (r *GormReviewRepository) GetByUserAndProduct(userID, productID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Create inserts a review.
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update applies a partial update.
func (r *GormReviewRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Review{}).Where("id = ?", id).Updates(updates).Error
}

// Delete soft-deletes a review.
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// PublishedAggregate computes the average rating and count over the
// product's published reviews.
func (r *GormReviewRepository) PublishedAggregate(productID uint) (float64, int, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg", "COUNT(*) AS count").
		Where("product_id = ? AND is_published = ?", productID, true).
		Take(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, int(row.Count), nil
}
