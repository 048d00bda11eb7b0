package service

import (
	"strings"

	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"
)

// CategoryUpsertInput is the admin category form.
type CategoryUpsertInput struct {
	Slug      string
	Name      models.JSON
	Icon      string
	SortOrder int
}

// CategoryService owns the category tree (flat, in this store).
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListAll returns every category in display order.
func (s *CategoryService) ListAll() ([]models.Category, error) {
	return s.categoryRepo.ListAll()
}

// GetByID returns a category.
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create adds a category.
func (s *CategoryService) Create(input CategoryUpsertInput) (*models.Category, error) {
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" || len(input.Name) == 0 {
		return nil, ErrInvalidInput
	}
	existing, err := s.categoryRepo.GetBySlug(input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	category := &models.Category{
		Slug:      input.Slug,
		NameJSON:  input.Name,
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update edits a category.
func (s *CategoryService) Update(id uint, input CategoryUpsertInput) (*models.Category, error) {
	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" || len(input.Name) == 0 {
		return nil, ErrInvalidInput
	}
	if input.Slug != current.Slug {
		existing, err := s.categoryRepo.GetBySlug(input.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrSlugTaken
		}
	}
	updates := map[string]interface{}{
		"slug":       input.Slug,
		"name_json":  input.Name,
		"icon":       input.Icon,
		"sort_order": input.SortOrder,
	}
	if err := s.categoryRepo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes a category.
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}
