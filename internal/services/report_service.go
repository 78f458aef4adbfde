package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "finanmind/internal/errors"
	"finanmind/internal/logger"
	"finanmind/internal/models"
	"finanmind/internal/period"
)

// historyMonths is the length of the dashboard's trailing history window.
const historyMonths = 6

var hundred = decimal.NewFromInt(100)

// reportService builds dashboards and reports. The clock and month labeler
// are injected so results are deterministic under test.
type reportService struct {
	db    *gorm.DB
	now   func() time.Time
	label period.MonthLabeler
}

// NewReportService creates a new ReportServicer. A nil clock uses time.Now
// and a nil labeler uses Portuguese short month names.
func NewReportService(db *gorm.DB, now func() time.Time, label period.MonthLabeler) ReportServicer {
	if now == nil {
		now = time.Now
	}
	if label == nil {
		label = period.ShortMonthPtBR
	}
	return &reportService{db: db, now: now, label: label}
}

// GetDashboard runs the four dashboard aggregations concurrently. The history
// chart always covers the trailing six months, whatever the period.
func (s *reportService) GetDashboard(ctx context.Context, userID uint, token string) (*DashboardView, error) {
	today := s.now()
	r := period.Resolve(token, today)
	window := period.TrailingMonths(today, historyMonths)

	var (
		totals     TypeTotals
		recent     []models.TransactionView
		categories []CategoryTotal
		history    []MonthTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = totalsByType(gctx, s.db, userID, r)
		return err
	})
	g.Go(func() (err error) {
		recent, err = recentTransactions(gctx, s.db, userID, r)
		return err
	})
	g.Go(func() (err error) {
		categories, err = expenseByCategory(gctx, s.db, userID, r)
		return err
	})
	g.Go(func() (err error) {
		history, err = monthlyHistory(gctx, s.db, userID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Get().Errorw("dashboard aggregation failed", "error", err, "user_id", userID, "period", r.Token)
		return nil, apperrors.Store(err)
	}

	if recent == nil {
		recent = []models.TransactionView{}
	}

	return &DashboardView{
		Period: r,
		Summary: DashboardSummary{
			Income:     totals.Income,
			Expense:    totals.Expense,
			Investment: totals.Investment,
			Balance:    totals.Income.Sub(totals.Expense),
		},
		Transactions: recent,
		Charts: DashboardCharts{
			Categories:    categoryChart(categories),
			IncomeExpense: s.historyChart(history),
		},
	}, nil
}

// GetReport runs the report aggregations concurrently over the selected period.
func (s *reportService) GetReport(ctx context.Context, userID uint, token string) (*ReportsView, error) {
	r := period.Resolve(token, s.now())

	var (
		totals     TypeTotals
		history    []MonthTotal
		categories []CategoryTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = totalsByType(gctx, s.db, userID, r)
		return err
	})
	g.Go(func() (err error) {
		history, err = monthlyHistory(gctx, s.db, userID, r)
		return err
	})
	g.Go(func() (err error) {
		categories, err = expenseByCategory(gctx, s.db, userID, r)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Get().Errorw("report aggregation failed", "error", err, "user_id", userID, "period", r.Token)
		return nil, apperrors.Store(err)
	}

	return &ReportsView{
		Period: r,
		Summary: ReportSummary{
			Income:  totals.Income,
			Expense: totals.Expense,
			Balance: totals.Income.Sub(totals.Expense),
		},
		IncomeExpense:       s.historyChart(history),
		ExpenseDistribution: categoryChart(categories),
	}, nil
}

// GetInvestmentSummary breaks down every investment transaction by category.
// Totals are summed from the category rows so they always reconcile.
func (s *reportService) GetInvestmentSummary(ctx context.Context, userID uint) (*InvestmentSummary, error) {
	rows, err := investmentsByCategory(ctx, s.db, userID)
	if err != nil {
		logger.Get().Errorw("investment aggregation failed", "error", err, "user_id", userID)
		return nil, apperrors.Store(err)
	}

	summary := &InvestmentSummary{
		TotalAmount: decimal.Zero,
		ByCategory:  make([]InvestmentCategory, 0, len(rows)),
	}
	for _, row := range rows {
		summary.TotalInvestments += row.Count
		summary.TotalAmount = summary.TotalAmount.Add(row.Total)
	}
	for _, row := range rows {
		summary.ByCategory = append(summary.ByCategory, InvestmentCategory{
			Category:   row.Category,
			Amount:     row.Total,
			Count:      row.Count,
			Percentage: percentage(row.Total, summary.TotalAmount),
		})
	}
	return summary, nil
}

// percentage returns part/total*100 rounded to one decimal, or zero when the
// total is zero.
func percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total).Round(1)
}

func categoryChart(rows []CategoryTotal) ChartSeries {
	chart := ChartSeries{
		Labels: make([]string, 0, len(rows)),
		Data:   make([]decimal.Decimal, 0, len(rows)),
	}
	for _, row := range rows {
		chart.Labels = append(chart.Labels, row.Category)
		chart.Data = append(chart.Data, row.Total)
	}
	return chart
}

func (s *reportService) historyChart(rows []MonthTotal) IncomeExpenseChart {
	chart := IncomeExpenseChart{
		Labels:  make([]string, 0, len(rows)),
		Income:  make([]decimal.Decimal, 0, len(rows)),
		Expense: make([]decimal.Decimal, 0, len(rows)),
	}
	for _, row := range rows {
		chart.Labels = append(chart.Labels, s.label(row.Month))
		chart.Income = append(chart.Income, row.Income)
		chart.Expense = append(chart.Expense, row.Expense)
	}
	return chart
}
