package testutil_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"finanmind/internal/errors"
	"finanmind/internal/logger"
	"finanmind/internal/models"
	"finanmind/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"users", "categories", "transactions", "goals", "goal_transactions", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBSilencesLogger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	if logger.Get().Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected the test logger to discard every level")
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected isolated databases, found %d users in the second one", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	category := testutil.CreateTestCategory(t, db, models.TransactionTypeExpense)
	if category.Type != models.TransactionTypeExpense {
		t.Errorf("expected expense category, got %s", category.Type)
	}

	tx := testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, "12.50", "2024-03-15")
	var stored models.Transaction
	if err := db.First(&stored, tx.ID).Error; err != nil {
		t.Fatalf("failed to reload transaction: %v", err)
	}
	if !stored.Amount.Equal(testutil.Amount(t, "12.5")) {
		t.Errorf("expected amount 12.5, got %s", stored.Amount)
	}
	if stored.Date.String() != "2024-03-15" {
		t.Errorf("expected date 2024-03-15, got %s", stored.Date)
	}

	goal := testutil.CreateTestGoal(t, db, user.ID, "1000")
	if !goal.CurrentAmount.IsZero() {
		t.Errorf("expected zero balance, got %s", goal.CurrentAmount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrGoalNotFound, "custom message")
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
