package services

import (
	"github.com/shopspring/decimal"

	apperrors "finanmind/internal/errors"
)

// Amount columns are NUMERIC(14,2).
const amountScale = 2

var amountLimit = decimal.New(1, 12)

// validateAmount rejects amounts that are not positive or that the amount
// columns cannot hold exactly.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	return checkStorable(amount)
}

func checkStorable(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(amountScale)) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount must have at most two decimal places")
	}
	if amount.Abs().GreaterThanOrEqual(amountLimit) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount is too large")
	}
	return nil
}
