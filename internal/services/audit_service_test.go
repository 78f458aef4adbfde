package services

import (
	"testing"

	"finanmind/internal/models"
	"finanmind/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("records_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		svc.Log(7, AuditActionGoalContribution, "goal", 3, "127.0.0.1", map[string]interface{}{"amount": "25.00"})

		var entry models.AuditLog
		if err := db.First(&entry).Error; err != nil {
			t.Fatalf("expected an audit entry: %v", err)
		}
		if entry.UserID != 7 || entry.Action != AuditActionGoalContribution || entry.ResourceID != 3 {
			t.Errorf("unexpected audit entry %+v", entry)
		}
		if entry.Changes != `{"amount":"25.00"}` {
			t.Errorf("unexpected changes %q", entry.Changes)
		}
	})

	t.Run("store_failure_is_swallowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		testutil.TeardownTestDB(t, db)

		// Must not panic or return anything.
		svc.Log(1, AuditActionAccountDelete, "user", 1, "", nil)
	})
}
