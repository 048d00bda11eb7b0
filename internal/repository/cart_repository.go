package repository

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/localstore"
	"github.com/anta-store/anta-api/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface. Two implementations
// exist: GORM for normal operation and a file-backed one for demo mode.
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByUserAndProduct(userID, productID uint) error
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser returns the user's cart lines, most recently touched first.
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).
		Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert inserts or updates the line for (user, product).
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	item.ID = existing.ID
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"quantity":     item.Quantity,
		"name_json":    item.NameJSON,
		"price_amount": item.PriceAmount,
		"image":        item.Image,
		"category_id":  item.CategoryID,
		"updated_at":   time.Now(),
	}).Error
}

// DeleteByUserAndProduct removes one cart line.
func (r *GormCartRepository) DeleteByUserAndProduct(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{}).Error
}

// ClearByUser empties the user's cart.
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// LocalCartRepository keeps carts in the file-backed store, one entry per
// user under the anta_cart key. Demo mode runs on this implementation.
type LocalCartRepository struct {
	store *localstore.Store
}

// NewLocalCartRepository creates a file-backed cart repository.
func NewLocalCartRepository(store *localstore.Store) *LocalCartRepository {
	return &LocalCartRepository{store: store}
}

// WithTx is a no-op: the file store has no transactions.
func (r *LocalCartRepository) WithTx(tx *gorm.DB) CartRepository {
	return r
}

func (r *LocalCartRepository) key(userID uint) string {
	return fmt.Sprintf("%s:%d", constants.LocalKeyCart, userID)
}

// ListByUser returns the user's cart lines.
func (r *LocalCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	r.store.GetJSON(r.key(userID), &items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

// Upsert inserts or updates the line for (user, product).
func (r *LocalCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	items, _ := r.ListByUser(item.UserID)
	now := time.Now()
	item.UpdatedAt = now
	for i := range items {
		if items[i].ProductID == item.ProductID {
			item.ID = items[i].ID
			item.CreatedAt = items[i].CreatedAt
			items[i] = *item
			r.store.SetJSON(r.key(item.UserID), items)
			return nil
		}
	}
	item.ID = nextLocalID(items)
	item.CreatedAt = now
	items = append(items, *item)
	r.store.SetJSON(r.key(item.UserID), items)
	return nil
}

// DeleteByUserAndProduct removes one cart line.
func (r *LocalCartRepository) DeleteByUserAndProduct(userID, productID uint) error {
	items, _ := r.ListByUser(userID)
	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	r.store.SetJSON(r.key(userID), kept)
	return nil
}

// ClearByUser empties the user's cart.
func (r *LocalCartRepository) ClearByUser(userID uint) error {
	r.store.Delete(r.key(userID))
	return nil
}

func nextLocalID(items []models.CartItem) uint {
	var max uint
	for _, it := range items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}
