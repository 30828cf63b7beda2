package domain

import (
	"donorcrm-backend/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// invalid reports a model-level rule failure on one field.
func invalid(field, rule string) error {
	return &apperrors.ValidationError{
		Message: "Validation failed: " + field + " " + rule,
		Details: map[string]string{field: rule},
	}
}

// Limits of the numeric(p,2) money columns.
var (
	maxMoney12 = decimal.New(1, 10) // numeric(12,2)
	maxMoney14 = decimal.New(1, 12) // numeric(14,2)
)

// checkMoney rejects values the column would round or overflow.
func checkMoney(field string, v, limit decimal.Decimal) error {
	if !v.Equal(v.Truncate(2)) {
		return invalid(field, "must have at most 2 decimal places")
	}
	if v.Abs().GreaterThanOrEqual(limit) {
		return invalid(field, "must be less than "+limit.String())
	}
	return nil
}
