package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "finanmind/internal/errors"
	"finanmind/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(name string, categoryType models.TransactionType) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !categoryType.IsValid() {
		return nil, apperrors.ErrInvalidTransactionType
	}

	category := &models.Category{
		Name: name,
		Type: categoryType,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return category, nil
}

// GetCategories lists categories ordered by name, optionally restricted to one type.
func (s *categoryService) GetCategories(categoryType *models.TransactionType) ([]models.Category, error) {
	q := s.db.Model(&models.Category{})
	if categoryType != nil {
		if !categoryType.IsValid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		q = q.Where("type = ?", *categoryType)
	}

	categories := []models.Category{}
	if err := q.Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Store(err)
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
		return nil, apperrors.Store(err)
	}
	return &category, nil
}

// DeleteCategory deletes a category that no transaction references.
func (s *categoryService) DeleteCategory(categoryID uint) error {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&inUse).Error; err != nil {
		return apperrors.Store(err)
	}
	if inUse > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Store(err)
	}
	return nil
}
