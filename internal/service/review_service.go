package service

import (
	"strings"

	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"

	"gorm.io/gorm"
)

// CreateReviewInput is the review submission.
type CreateReviewInput struct {
	UserID    uint
	ProductID uint
	Rating    int
	Body      string
}

// ReviewService owns reviews and the product rating aggregate. Writing a
// review is purchase-gated; any mutation recomputes the product's rating
// average and count from the published set, in the same transaction.
type ReviewService struct {
	reviewRepo  *repository.GormReviewRepository
	orderRepo   *repository.GormOrderRepository
	productRepo *repository.GormProductRepository
}

// NewReviewService creates a review service.
func NewReviewService(
	reviewRepo *repository.GormReviewRepository,
	orderRepo *repository.GormOrderRepository,
	productRepo *repository.GormProductRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// ListProductReviews returns the published reviews of a product.
func (s *ReviewService) ListProductReviews(productID uint, page, pageSize int) ([]models.Review, int64, error) {
	if productID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.reviewRepo.List(repository.ReviewListFilter{
		ProductID:     productID,
		OnlyPublished: true,
		WithUser:      true,
		Page:          page,
		PageSize:      pageSize,
	})
}

// CanReview reports whether the user may review the product: they must have
// a qualifying purchase and no existing review.
func (s *ReviewService) CanReview(userID, productID uint) (bool, error) {
	if userID == 0 || productID == 0 {
		return false, ErrInvalidInput
	}
	purchased, err := s.orderRepo.HasPurchasedProduct(userID, productID, PurchaseGateStatuses())
	if err != nil {
		return false, err
	}
	if !purchased {
		return false, nil
	}
	existing, err := s.reviewRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

// CreateReview records a purchase-gated review and refreshes the product
// rating aggregate.
func (s *ReviewService) CreateReview(input CreateReviewInput) (*models.Review, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return nil, ErrInvalidInput
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	purchased, err := s.orderRepo.HasPurchasedProduct(input.UserID, input.ProductID, PurchaseGateStatuses())
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrNotPurchased
	}

	existing, err := s.reviewRepo.GetByUserAndProduct(input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		UserID:      input.UserID,
		ProductID:   input.ProductID,
		Rating:      input.Rating,
		Body:        strings.TrimSpace(input.Body),
		IsPublished: true,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		if err := reviewRepo.Create(review); err != nil {
			return err
		}
		return s.recalcRating(tx, input.ProductID)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("review_created",
		"review_id", review.ID,
		"user_id", input.UserID,
		"product_id", input.ProductID,
		"rating", input.Rating,
	)
	return review, nil
}

// ListAdmin returns reviews for moderation, including unpublished ones.
func (s *ReviewService) ListAdmin(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.List(filter)
}

// SetPublished publishes or hides a review and refreshes the aggregate.
func (s *ReviewService) SetPublished(id uint, published bool) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.IsPublished == published {
		return nil
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		if err := reviewRepo.Update(id, map[string]interface{}{"is_published": published}); err != nil {
			return err
		}
		return s.recalcRating(tx, review.ProductID)
	})
}

// DeleteReview removes a review and refreshes the aggregate.
func (s *ReviewService) DeleteReview(id uint) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		if err := reviewRepo.Delete(id); err != nil {
			return err
		}
		return s.recalcRating(tx, review.ProductID)
	})
}

// recalcRating recomputes the product aggregate from the published set
// inside the caller's transaction.
func (s *ReviewService) recalcRating(tx *gorm.DB, productID uint) error {
	reviewRepo := s.reviewRepo.WithTx(tx)
	productRepo := s.productRepo.WithTx(tx)
	avg, count, err := reviewRepo.PublishedAggregate(productID)
	if err != nil {
		return err
	}
	return productRepo.UpdateRating(productID, avg, count)
}
