package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target owned by a user. CurrentAmount only moves through
// ledger contributions, see GoalTransaction.
type Goal struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Title         string          `gorm:"not null" json:"title"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"current_amount"`
	Deadline      *Date           `json:"deadline,omitempty"`
}

// Progress returns the share of the target reached, as a percentage rounded
// to one decimal place. A zero target yields zero.
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(1)
}

// GoalTransaction is an append-only ledger entry backing a goal's progress.
type GoalTransaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null" json:"user_id"`
	GoalID      uint            `gorm:"not null;index" json:"goal_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description string          `json:"description"`
	Date        Date            `gorm:"not null" json:"date"`
	CreatedAt   time.Time       `json:"created_at"`

	Goal *Goal `gorm:"foreignKey:GoalID" json:"-"`
}
