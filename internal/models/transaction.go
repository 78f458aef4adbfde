package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome     TransactionType = "income"
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeInvestment TransactionType = "investment"
)

// IsValid reports whether t is one of the supported transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeInvestment:
		return true
	}
	return false
}

// Transaction represents a financial transaction in the system
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index:idx_transactions_user_date" json:"user_id"`
	CategoryID  uint            `gorm:"not null" json:"category_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Date        Date            `gorm:"not null;index:idx_transactions_user_date" json:"date"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// TransactionView is a transaction joined with its category.
type TransactionView struct {
	ID           uint            `json:"id"`
	UserID       uint            `json:"user_id"`
	CategoryID   uint            `json:"category_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	Date         Date            `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
	CategoryName string          `json:"category_name"`
	CategoryType TransactionType `json:"category_type"`
}
