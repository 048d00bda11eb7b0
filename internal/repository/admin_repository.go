package repository

import (
	"errors"
	"time"

	"github.com/anta-store/anta-api/internal/models"

	"gorm.io/gorm"
)

// AdminRepository is the admin account data access interface.
type AdminRepository interface {
	GetByID(id uint) (*models.Admin, error)
	GetByUsername(username string) (*models.Admin, error)
	Create(admin *models.Admin) error
	UpdatePassword(id uint, passwordHash string) error
	TouchLogin(id uint) error
}

// GormAdminRepository is the GORM implementation.
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates an admin repository.
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// GetByID returns an admin by ID, nil when absent.
func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByUsername returns an admin by username, nil when absent.
func (r *GormAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// Create inserts an admin account.
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// UpdatePassword replaces the password hash.
func (r *GormAdminRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Update("password_hash", passwordHash).Error
}

// TouchLogin records a successful login.
func (r *GormAdminRepository) TouchLogin(id uint) error {
	now := time.Now()
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login_at", &now).Error
}
