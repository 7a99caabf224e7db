package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "financetracker/internal/errors"
	"financetracker/internal/logger"
	"financetracker/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// GetAllCategories returns every category ordered by id.
func (s *categoryService) GetAllCategories() ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// SeedDefaults inserts any default category that does not exist yet.
// Running it repeatedly is safe.
func (s *categoryService) SeedDefaults() error {
	created := 0
	for _, name := range models.DefaultCategories {
		category := models.Category{Name: name}
		result := s.db.Where("name = ?", name).FirstOrCreate(&category)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected > 0 {
			created++
		}
	}

	if created > 0 {
		logger.Get().Infow("seeded default categories", "created", created)
	}
	return nil
}
