package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/localstore"
	"github.com/anta-store/anta-api/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository is the wishlist data access interface.
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishlistItem, error)
	Add(userID, productID uint) error
	Remove(userID, productID uint) error
	Contains(userID, productID uint) (bool, error)
}

// GormWishlistRepository is the GORM implementation.
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a wishlist repository.
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByUser returns the user's saved products, newest first.
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).
		Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Add marks a product as saved. Adding twice is a no-op.
func (r *GormWishlistRepository) Add(userID, productID uint) error {
	var existing models.WishlistItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&models.WishlistItem{UserID: userID, ProductID: productID}).Error
}

// Remove unmarks a product. Removing an absent entry is a no-op.
func (r *GormWishlistRepository) Remove(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{}).Error
}

// Contains reports whether the product is saved.
func (r *GormWishlistRepository) Contains(userID, productID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// LocalWishlistRepository keeps wishlists in the file-backed store under the
// anta_wishlist key, as a plain set of product IDs.
type LocalWishlistRepository struct {
	store *localstore.Store
}

// NewLocalWishlistRepository creates a file-backed wishlist repository.
func NewLocalWishlistRepository(store *localstore.Store) *LocalWishlistRepository {
	return &LocalWishlistRepository{store: store}
}

func (r *LocalWishlistRepository) key(userID uint) string {
	return fmt.Sprintf("%s:%d", constants.LocalKeyWishlist, userID)
}

func (r *LocalWishlistRepository) ids(userID uint) []uint {
	var ids []uint
	r.store.GetJSON(r.key(userID), &ids)
	return ids
}

// ListByUser returns the user's saved products.
func (r *LocalWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	ids := r.ids(userID)
	items := make([]models.WishlistItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, models.WishlistItem{UserID: userID, ProductID: id, CreatedAt: time.Now()})
	}
	return items, nil
}

// Add marks a product as saved. Adding twice is a no-op.
func (r *LocalWishlistRepository) Add(userID, productID uint) error {
	ids := r.ids(userID)
	for _, id := range ids {
		if id == productID {
			return nil
		}
	}
	r.store.SetJSON(r.key(userID), append(ids, productID))
	return nil
}

// Remove unmarks a product.
func (r *LocalWishlistRepository) Remove(userID, productID uint) error {
	ids := r.ids(userID)
	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	r.store.SetJSON(r.key(userID), kept)
	return nil
}

// Contains reports whether the product is saved.
func (r *LocalWishlistRepository) Contains(userID, productID uint) (bool, error) {
	for _, id := range r.ids(userID) {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}
