package repository

import (
	"testing"

	"github.com/anta-store/anta-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReviewRepositoryTest(t *testing.T) *GormReviewRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Review{}); err != nil {
		t.Fatalf("migrate review failed: %v", err)
	}
	return NewReviewRepository(db)
}

func TestPublishedAggregateIgnoresUnpublished(t *testing.T) {
	repo := setupReviewRepositoryTest(t)

	reviews := []models.Review{
		{UserID: 1, ProductID: 5, Rating: 5, IsPublished: true},
		{UserID: 2, ProductID: 5, Rating: 3, IsPublished: true},
		{UserID: 3, ProductID: 5, Rating: 1, IsPublished: false},
		{UserID: 4, ProductID: 6, Rating: 2, IsPublished: true},
	}
	for i := range reviews {
		if err := repo.Create(&reviews[i]); err != nil {
			t.Fatalf("create review failed: %v", err)
		}
	}

	avg, count, err := repo.PublishedAggregate(5)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count want 2 got %d", count)
	}
	if avg != 4 {
		t.Fatalf("avg want 4 got %v", avg)
	}
}

func TestPublishedAggregateEmptyProduct(t *testing.T) {
	repo := setupReviewRepositoryTest(t)

	avg, count, err := repo.PublishedAggregate(42)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if avg != 0 || count != 0 {
		t.Fatalf("empty product aggregate want 0/0 got %v/%d", avg, count)
	}
}

func TestGetByUserAndProduct(t *testing.T) {
	repo := setupReviewRepositoryTest(t)
	review := &models.Review{UserID: 1, ProductID: 5, Rating: 4, IsPublished: true}
	if err := repo.Create(review); err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	got, err := repo.GetByUserAndProduct(1, 5)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.ID != review.ID {
		t.Fatalf("expected existing review, got %+v", got)
	}

	got, err = repo.GetByUserAndProduct(1, 6)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent review")
	}
}
