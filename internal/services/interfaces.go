package services

import (
	"context"

	"github.com/shopspring/decimal"

	"finanmind/internal/models"
	"finanmind/internal/pagination"
	"finanmind/internal/period"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	UpdateProfile(userID uint, name, email string) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
	DeleteUser(userID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
// Categories are global and shared by every user.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.TransactionType) (*models.Category, error)
	GetCategories(categoryType *models.TransactionType) ([]models.Category, error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	DeleteCategory(categoryID uint) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	StartDate  *models.Date
	EndDate    *models.Date
	Type       *models.TransactionType
	CategoryID *uint
}

// TransactionUpdate holds the fields of a transaction that may change.
// Nil fields are left untouched.
type TransactionUpdate struct {
	CategoryID  *uint
	Type        *models.TransactionType
	Amount      *decimal.Decimal
	Description *string
	Date        *models.Date
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID uint, transactionType models.TransactionType, amount decimal.Decimal, description string, date models.Date) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.TransactionView], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// GoalUpdate holds the editable fields of a goal. The balance is not among
// them: it only moves through Contribute.
type GoalUpdate struct {
	Title        *string
	TargetAmount *decimal.Decimal
	Deadline     *models.Date
}

// GoalReportSummary aggregates a goal's ledger.
type GoalReportSummary struct {
	TotalTransactions     int64           `json:"total_transactions"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	AveragePerTransaction decimal.Decimal `json:"average_per_transaction"`
}

// GoalReport is a goal's full ledger with its summary.
type GoalReport struct {
	GoalTitle    string                   `json:"goal_title"`
	Transactions []models.GoalTransaction `json:"transactions"`
	Summary      GoalReportSummary        `json:"summary"`
}

// GoalServicer defines the contract for goals and their contribution ledger.
type GoalServicer interface {
	CreateGoal(userID uint, title string, targetAmount, initialAmount decimal.Decimal, deadline *models.Date) (*models.Goal, error)
	GetUserGoals(userID uint) ([]models.Goal, error)
	GetGoalByID(userID, goalID uint) (*models.Goal, error)
	UpdateGoal(userID, goalID uint, update GoalUpdate) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
	Contribute(userID, goalID uint, amount decimal.Decimal, description string, date models.Date) (*models.Goal, *models.GoalTransaction, error)
	GetGoalLedger(userID, goalID uint) ([]models.GoalTransaction, error)
	GetGoalReport(userID, goalID uint) (*GoalReport, error)
}

// ChartSeries is a labelled single-series chart.
type ChartSeries struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// IncomeExpenseChart is a monthly chart with an income and an expense series.
type IncomeExpenseChart struct {
	Labels  []string          `json:"labels"`
	Income  []decimal.Decimal `json:"income"`
	Expense []decimal.Decimal `json:"expense"`
}

// DashboardSummary holds the period totals shown on the dashboard.
type DashboardSummary struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Investment decimal.Decimal `json:"investment"`
	Balance    decimal.Decimal `json:"balance"`
}

// DashboardCharts groups the dashboard charts.
type DashboardCharts struct {
	Categories    ChartSeries        `json:"categories"`
	IncomeExpense IncomeExpenseChart `json:"income_expense"`
}

// DashboardView is the dashboard for one period.
type DashboardView struct {
	Period       period.Range             `json:"period"`
	Summary      DashboardSummary         `json:"summary"`
	Transactions []models.TransactionView `json:"transactions"`
	Charts       DashboardCharts          `json:"charts"`
}

// ReportSummary holds the period totals of the reports view.
type ReportSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ReportsView is the reports page for one period.
type ReportsView struct {
	Period              period.Range       `json:"period"`
	Summary             ReportSummary      `json:"summary"`
	IncomeExpense       IncomeExpenseChart `json:"income_expense"`
	ExpenseDistribution ChartSeries        `json:"expense_distribution"`
}

// InvestmentCategory is one category's share of the invested total.
type InvestmentCategory struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int64           `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// InvestmentSummary aggregates every investment transaction of a user.
type InvestmentSummary struct {
	TotalInvestments int64                `json:"total_investments"`
	TotalAmount      decimal.Decimal      `json:"total_amount"`
	ByCategory       []InvestmentCategory `json:"by_category"`
}

// ReportServicer assembles dashboards and reports from the aggregation queries.
type ReportServicer interface {
	GetDashboard(ctx context.Context, userID uint, token string) (*DashboardView, error)
	GetReport(ctx context.Context, userID uint, token string) (*ReportsView, error)
	GetInvestmentSummary(ctx context.Context, userID uint) (*InvestmentSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
