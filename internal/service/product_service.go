package service

import (
	"strings"

	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"
)

// ProductUpsertInput is the admin product form.
type ProductUpsertInput struct {
	CategoryID  uint
	Slug        string
	Name        models.JSON
	Description models.JSON
	Price       models.Money
	Image       string
	Images      models.StringArray
	Tags        models.StringArray
	Stock       int
	IsActive    bool
	SortOrder   int
}

// ProductService owns the catalog.
type ProductService struct {
	productRepo  *repository.GormProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a product service.
func NewProductService(productRepo *repository.GormProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// List returns a page of products.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetByID returns a product.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetBySlug returns a product by its URL slug.
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create adds a product to the catalog.
func (s *ProductService) Create(input ProductUpsertInput) (*models.Product, error) {
	if err := s.checkInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.productRepo.GetBySlug(input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	product := &models.Product{
		CategoryID:      input.CategoryID,
		Slug:            input.Slug,
		NameJSON:        input.Name,
		DescriptionJSON: input.Description,
		PriceAmount:     input.Price,
		Image:           input.Image,
		Images:          input.Images,
		Tags:            input.Tags,
		Stock:           input.Stock,
		IsActive:        input.IsActive,
		SortOrder:       input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return product, nil
}

// Update edits a product.
func (s *ProductService) Update(id uint, input ProductUpsertInput) (*models.Product, error) {
	if err := s.checkInput(&input); err != nil {
		return nil, err
	}
	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.Slug != current.Slug {
		existing, err := s.productRepo.GetBySlug(input.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrSlugTaken
		}
	}

	updates := map[string]interface{}{
		"category_id":      input.CategoryID,
		"slug":             input.Slug,
		"name_json":        input.Name,
		"description_json": input.Description,
		"price_amount":     input.Price,
		"image":            input.Image,
		"images":           input.Images,
		"tags":             input.Tags,
		"stock":            input.Stock,
		"is_active":        input.IsActive,
		"sort_order":       input.SortOrder,
	}
	if err := s.productRepo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes a product from the catalog.
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) checkInput(input *ProductUpsertInput) error {
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" || len(input.Name) == 0 || input.CategoryID == 0 {
		return ErrInvalidInput
	}
	if input.Stock < 0 || input.Price.Decimal.IsNegative() {
		return ErrInvalidInput
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}
