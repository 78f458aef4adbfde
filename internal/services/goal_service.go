package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finanmind/internal/errors"
	"finanmind/internal/logger"
	"finanmind/internal/models"
)

// initialAmountDescription labels the ledger row recording a goal's starting balance.
const initialAmountDescription = "Initial amount"

// goalService handles goals and their contribution ledger.
type goalService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGoalService creates a new GoalServicer. A nil clock uses time.Now.
func NewGoalService(db *gorm.DB, now func() time.Time) GoalServicer {
	if now == nil {
		now = time.Now
	}
	return &goalService{db: db, now: now}
}

// CreateGoal creates a goal. A positive initial amount is recorded in the
// ledger within the same transaction so the balance reconciles from day one.
func (s *goalService) CreateGoal(userID uint, title string, targetAmount, initialAmount decimal.Decimal, deadline *models.Date) (*models.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal title is required")
	}
	if !targetAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "target amount must be greater than zero")
	}
	if err := checkStorable(targetAmount); err != nil {
		return nil, err
	}
	if initialAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "initial amount cannot be negative")
	}
	if err := checkStorable(initialAmount); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  targetAmount,
		CurrentAmount: initialAmount,
		Deadline:      deadline,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(goal).Error; err != nil {
			return apperrors.Store(err)
		}
		if !initialAmount.IsPositive() {
			return nil
		}
		entry := &models.GoalTransaction{
			UserID:      userID,
			GoalID:      goal.ID,
			Amount:      initialAmount,
			Description: initialAmountDescription,
			Date:        models.NewDate(s.now()),
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Store(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// GetUserGoals lists a user's goals, newest first.
func (s *goalService) GetUserGoals(userID uint) ([]models.Goal, error) {
	goals := []models.Goal{}
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&goals).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return goals, nil
}

// GetGoalByID retrieves a goal owned by the user.
func (s *goalService) GetGoalByID(userID, goalID uint) (*models.Goal, error) {
	return s.findGoal(s.db, userID, goalID)
}

func (s *goalService) findGoal(db *gorm.DB, userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Store(err)
	}
	return &goal, nil
}

// UpdateGoal changes a goal's title, target or deadline.
func (s *goalService) UpdateGoal(userID, goalID uint, update GoalUpdate) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal title is required")
		}
		updates["title"] = title
	}
	if update.TargetAmount != nil {
		if !update.TargetAmount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "target amount must be greater than zero")
		}
		if err := checkStorable(*update.TargetAmount); err != nil {
			return nil, err
		}
		updates["target_amount"] = *update.TargetAmount
	}
	if update.Deadline != nil {
		updates["deadline"] = *update.Deadline
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Store(err)
		}
	}
	return s.GetGoalByID(userID, goalID)
}

// DeleteGoal removes a goal together with its ledger.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		goal, err := s.findGoal(tx, userID, goalID)
		if err != nil {
			return err
		}
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.GoalTransaction{}).Error; err != nil {
			return apperrors.Store(err)
		}
		if err := tx.Delete(goal).Error; err != nil {
			return apperrors.Store(err)
		}
		return nil
	})
}

// Contribute adds amount to the goal's balance and appends the matching
// ledger row. Both writes commit together or not at all. A zero date means
// today.
func (s *goalService) Contribute(userID, goalID uint, amount decimal.Decimal, description string, date models.Date) (*models.Goal, *models.GoalTransaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, nil, err
	}
	if date.IsZero() {
		date = models.NewDate(s.now())
	}

	var (
		goal  *models.Goal
		entry *models.GoalTransaction
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Goal{}).
			Where("id = ? AND user_id = ?", goalID, userID).
			Update("current_amount", gorm.Expr("current_amount + ?", amount))
		if res.Error != nil {
			return apperrors.Store(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrGoalNotFound
		}

		entry = &models.GoalTransaction{
			UserID:      userID,
			GoalID:      goalID,
			Amount:      amount,
			Description: strings.TrimSpace(description),
			Date:        date,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Store(err)
		}

		var err error
		goal, err = s.findGoal(tx, userID, goalID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Get().Infow("goal contribution recorded",
		"goal_id", goalID,
		"user_id", userID,
		"amount", amount.String(),
	)
	return goal, entry, nil
}

// GetGoalLedger returns a goal's contributions, newest first.
func (s *goalService) GetGoalLedger(userID, goalID uint) ([]models.GoalTransaction, error) {
	if _, err := s.GetGoalByID(userID, goalID); err != nil {
		return nil, err
	}
	return s.ledger(userID, goalID)
}

func (s *goalService) ledger(userID, goalID uint) ([]models.GoalTransaction, error) {
	entries := []models.GoalTransaction{}
	if err := s.db.
		Where("goal_id = ? AND user_id = ?", goalID, userID).
		Order("date DESC, created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return entries, nil
}

// GetGoalReport returns the goal's ledger with its count, total and average.
func (s *goalService) GetGoalReport(userID, goalID uint) (*GoalReport, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledger(userID, goalID)
	if err != nil {
		return nil, err
	}

	var totals struct {
		Count int64
		Total decimal.Decimal
	}
	if err := s.db.Model(&models.GoalTransaction{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("goal_id = ? AND user_id = ?", goalID, userID).
		Scan(&totals).Error; err != nil {
		return nil, apperrors.Store(err)
	}

	average := decimal.Zero
	if totals.Count > 0 {
		average = totals.Total.DivRound(decimal.NewFromInt(totals.Count), 2)
	}

	return &GoalReport{
		GoalTitle:    goal.Title,
		Transactions: entries,
		Summary: GoalReportSummary{
			TotalTransactions:     totals.Count,
			TotalAmount:           totals.Total,
			AveragePerTransaction: average,
		},
	}, nil
}
