package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finanmind/internal/models"
	"finanmind/internal/period"
)

// recentLimit caps the transactions listed on the dashboard.
const recentLimit = 10

// TypeTotals holds the summed amount of each transaction type.
type TypeTotals struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Investment decimal.Decimal
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// MonthTotal holds the income and expense of one YYYY-MM month.
type MonthTotal struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

type investmentRow struct {
	Category string
	Total    decimal.Decimal
	Count    int64
}

// monthExpr returns the SQL expression formatting t.date as YYYY-MM for the
// connected dialect.
func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m', t.date)"
	}
	return "to_char(t.date, 'YYYY-MM')"
}

// inRange scopes a transactions query aliased as t to one user and period.
func inRange(userID uint, r period.Range) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("t.user_id = ? AND t.date BETWEEN ? AND ?", userID, r.Start, r.End)
	}
}

func totalsByType(ctx context.Context, db *gorm.DB, userID uint, r period.Range) (TypeTotals, error) {
	var rows []struct {
		Type  models.TransactionType
		Total decimal.Decimal
	}
	err := db.WithContext(ctx).
		Table("transactions AS t").
		Select("t.type AS type, COALESCE(SUM(t.amount), 0) AS total").
		Scopes(inRange(userID, r)).
		Group("t.type").
		Scan(&rows).Error
	if err != nil {
		return TypeTotals{}, err
	}

	totals := TypeTotals{Income: decimal.Zero, Expense: decimal.Zero, Investment: decimal.Zero}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			totals.Income = row.Total
		case models.TransactionTypeExpense:
			totals.Expense = row.Total
		case models.TransactionTypeInvestment:
			totals.Investment = row.Total
		}
	}
	return totals, nil
}

func expenseByCategory(ctx context.Context, db *gorm.DB, userID uint, r period.Range) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := db.WithContext(ctx).
		Table("transactions AS t").
		Select("c.name AS category, SUM(t.amount) AS total").
		Joins("JOIN categories AS c ON c.id = t.category_id").
		Scopes(inRange(userID, r)).
		Where("t.type = ?", models.TransactionTypeExpense).
		Group("c.name").
		Having("SUM(t.amount) > 0").
		Order("total DESC, c.name ASC").
		Scan(&rows).Error
	return rows, err
}

func monthlyHistory(ctx context.Context, db *gorm.DB, userID uint, r period.Range) ([]MonthTotal, error) {
	month := monthExpr(db)

	var rows []MonthTotal
	err := db.WithContext(ctx).
		Table("transactions AS t").
		Select(month+` AS month,
			COALESCE(SUM(CASE WHEN t.type = ? THEN t.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN t.type = ? THEN t.amount ELSE 0 END), 0) AS expense`,
			models.TransactionTypeIncome, models.TransactionTypeExpense).
		Scopes(inRange(userID, r)).
		Where("t.type IN ?", []models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense}).
		Group(month).
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

func recentTransactions(ctx context.Context, db *gorm.DB, userID uint, r period.Range) ([]models.TransactionView, error) {
	rows := make([]models.TransactionView, 0, recentLimit)
	err := db.WithContext(ctx).
		Table("transactions AS t").
		Select(`t.id, t.user_id, t.category_id, t.description, t.amount, t.type, t.date, t.created_at,
			c.name AS category_name, c.type AS category_type`).
		Joins("JOIN categories AS c ON c.id = t.category_id").
		Scopes(inRange(userID, r)).
		Order("t.date DESC, t.created_at DESC, t.id DESC").
		Limit(recentLimit).
		Scan(&rows).Error
	return rows, err
}

// investmentsByCategory covers every investment transaction of the user,
// regardless of date.
func investmentsByCategory(ctx context.Context, db *gorm.DB, userID uint) ([]investmentRow, error) {
	var rows []investmentRow
	err := db.WithContext(ctx).
		Table("transactions AS t").
		Select("c.name AS category, SUM(t.amount) AS total, COUNT(*) AS count").
		Joins("JOIN categories AS c ON c.id = t.category_id").
		Where("t.user_id = ? AND t.type = ?", userID, models.TransactionTypeInvestment).
		Group("c.name").
		Order("total DESC, c.name ASC").
		Scan(&rows).Error
	return rows, err
}
