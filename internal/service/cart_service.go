package service

import (
	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"
)

// CartView is the cart response shape: the lines plus the derived totals.
type CartView struct {
	Items  []models.CartItem `json:"items"`
	Totals CartTotals        `json:"totals"`
}

// AddToCartResult reports what an add actually did, so the caller can show
// "added" versus "quantity updated".
type AddToCartResult struct {
	Item    models.CartItem `json:"item"`
	NewLine bool            `json:"new_line"`
}

// CartService owns cart line mutations. Every mutation re-reads live stock
// from the product store instead of trusting the snapshot embedded in the
// cart line, since stock moves underneath the session.
type CartService struct {
	cartRepo             repository.CartRepository
	productRepo          repository.ProductRepository
	noteService          *OrderNoteService
	clearNoteOnCartClear bool
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, noteService *OrderNoteService, clearNoteOnCartClear bool) *CartService {
	return &CartService{
		cartRepo:             cartRepo,
		productRepo:          productRepo,
		noteService:          noteService,
		clearNoteOnCartClear: clearNoteOnCartClear,
	}
}

// GetCart returns the user's cart with computed totals.
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return &CartView{Items: items, Totals: ComputeCartTotals(items)}, nil
}

// AddToCart adds quantity units of a product, merging into an existing line
// when present. The requested quantity is clamped into [1,99]; the merged
// line quantity never exceeds live stock or the per-line maximum.
func (s *CartService) AddToCart(userID, productID uint, requestedQty float64) (*AddToCartResult, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidInput
	}
	quantity := ClampCartQuantity(requestedQty)

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	stock, ok, err := s.productRepo.GetStock(productID)
	if err != nil {
		return nil, err
	}
	if !ok || stock <= 0 {
		return nil, &OutOfStockError{ProductID: productID, MaxAllowed: 0}
	}

	existing, err := s.findLine(userID, productID)
	if err != nil {
		return nil, err
	}
	existingQty := 0
	if existing != nil {
		existingQty = existing.Quantity
	}
	if existingQty+quantity > stock {
		maxAllowed := stock - existingQty
		if maxAllowed < 0 {
			maxAllowed = 0
		}
		return nil, &OutOfStockError{ProductID: productID, MaxAllowed: maxAllowed}
	}

	merged := existingQty + quantity
	if merged > constants.CartQuantityMax {
		merged = constants.CartQuantityMax
	}

	line := models.CartItem{
		UserID:      userID,
		ProductID:   productID,
		NameJSON:    product.NameJSON,
		PriceAmount: product.PriceAmount,
		Image:       product.Image,
		CategoryID:  product.CategoryID,
		Quantity:    merged,
	}
	if err := s.cartRepo.Upsert(&line); err != nil {
		return nil, err
	}

	logger.Infow("cart_item_added",
		"user_id", userID,
		"product_id", productID,
		"quantity", merged,
		"new_line", existing == nil,
	)
	return &AddToCartResult{Item: line, NewLine: existing == nil}, nil
}

// UpdateQuantity replaces one line's quantity, leaving other lines alone.
// Zero and negative requests clamp to the minimum instead of removing the
// line; removal is its own operation.
func (s *CartService) UpdateQuantity(userID, productID uint, requestedQty float64) (*models.CartItem, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidInput
	}
	quantity := ClampCartQuantity(requestedQty)

	existing, err := s.findLine(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCartItemNotFound
	}

	stock, ok, err := s.productRepo.GetStock(productID)
	if err != nil {
		return nil, err
	}
	if !ok || stock <= 0 {
		return nil, &OutOfStockError{ProductID: productID, MaxAllowed: 0}
	}
	if quantity > stock {
		return nil, &OutOfStockError{ProductID: productID, MaxAllowed: stock}
	}

	existing.Quantity = quantity
	if err := s.cartRepo.Upsert(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// RemoveFromCart drops one line. Removing an absent product is a no-op.
func (s *CartService) RemoveFromCart(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidInput
	}
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// ClearCart empties the cart. Depending on policy it also clears the
// pending order note, so an abandoned note never leaks into a later order.
func (s *CartService) ClearCart(userID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	if err := s.cartRepo.ClearByUser(userID); err != nil {
		return err
	}
	if s.clearNoteOnCartClear && s.noteService != nil {
		s.noteService.ClearNote(userID)
	}
	return nil
}

func (s *CartService) findLine(userID, productID uint) (*models.CartItem, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i], nil
		}
	}
	return nil, nil
}
