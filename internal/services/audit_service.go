package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"finanmind/internal/logger"
	"finanmind/internal/models"
)

// Audit actions.
const (
	AuditActionGoalContribution = "goal.contribute"
	AuditActionGoalCreate       = "goal.create"
	AuditActionGoalDelete       = "goal.delete"
	AuditActionProfileUpdate    = "profile.update"
	AuditActionPasswordChange   = "profile.password_change"
	AuditActionAccountDelete    = "account.delete"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged and never returned, so a
// failed audit write cannot undo a committed business write.
func (s *auditService) Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}
