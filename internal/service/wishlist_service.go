package service

import (
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"
)

// WishlistService owns the saved-products set. Toggling is idempotent in
// both directions.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  *repository.GormProductRepository
}

// NewWishlistService creates a wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo *repository.GormProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// List returns the user's saved products.
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.wishlistRepo.ListByUser(userID)
}

// Toggle saves or unsaves a product and reports the resulting state.
func (s *WishlistService) Toggle(userID, productID uint) (bool, error) {
	if userID == 0 || productID == 0 {
		return false, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, ErrProductNotFound
	}

	saved, err := s.wishlistRepo.Contains(userID, productID)
	if err != nil {
		return false, err
	}
	if saved {
		return false, s.wishlistRepo.Remove(userID, productID)
	}
	return true, s.wishlistRepo.Add(userID, productID)
}

// Remove unsaves a product. Removing an absent entry is a no-op.
func (s *WishlistService) Remove(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidInput
	}
	return s.wishlistRepo.Remove(userID, productID)
}
