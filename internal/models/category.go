package models

// Category is a transaction category shared by all users.
type Category struct {
	Base
	Name string          `gorm:"not null;index:idx_categories_name_type" json:"name"`
	Type TransactionType `gorm:"not null;index:idx_categories_name_type" json:"type"`
}
