package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finanmind/internal/errors"
	"finanmind/internal/models"
	"finanmind/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	now             func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
		now:             time.Now,
	}
}

// CreateTransaction records a transaction for the user. The category must
// exist; its type is not required to match the transaction's.
func (s *transactionService) CreateTransaction(
	userID uint,
	categoryID uint,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	description string,
	date models.Date,
) (*models.Transaction, error) {
	if !transactionType.IsValid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if categoryID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category ID is required")
	}

	// Default date to today if not provided
	if date.IsZero() {
		date = models.NewDate(s.now())
	}

	if _, err := s.categoryService.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Type:        transactionType,
		Date:        date,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions joined with their category, newest first.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.TransactionView], error) {
	page.Defaults()

	base := s.db.Table("transactions AS t").
		Joins("JOIN categories AS c ON c.id = t.category_id").
		Where("t.user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Store(err)
	}

	var transactions []models.TransactionView
	if err := base.
		Select(`t.id, t.user_id, t.category_id, t.description, t.amount, t.type, t.date, t.created_at,
			c.name AS category_name, c.type AS category_type`).
		Scopes(pagination.Paginate(page)).
		Order("t.date DESC, t.created_at DESC, t.id DESC").
		Scan(&transactions).Error; err != nil {
		return nil, apperrors.Store(err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.StartDate != nil {
		q = q.Where("t.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("t.date <= ?", *f.EndDate)
	}
	if f.Type != nil {
		q = q.Where("t.type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("t.category_id = ?", *f.CategoryID)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Store(err)
	}
	return &transaction, nil
}

// UpdateTransaction applies the non-nil fields of update.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.CategoryID != nil {
		if _, err := s.categoryService.GetCategoryByID(*update.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}
	if update.Type != nil {
		if !update.Type.IsValid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		updates["type"] = *update.Type
	}
	if update.Amount != nil {
		if err := validateAmount(*update.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *update.Amount
	}
	if update.Description != nil {
		updates["description"] = strings.TrimSpace(*update.Description)
	}
	if update.Date != nil && !update.Date.IsZero() {
		updates["date"] = *update.Date
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Store(err)
		}
	}
	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction deletes a transaction owned by the user.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return apperrors.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
