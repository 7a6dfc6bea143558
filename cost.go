package codevf

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codevf/codevf-go/internal/types"
)

// CalculateFinalCreditCost computes maxCredits × slaMultiplier(mode) ×
// tagMultiplier on exact decimals, rounded up to the nearest whole
// credit. Ceiling guarantees the platform never under-reserves credits
// against fractional multipliers.
func CalculateFinalCreditCost(maxCredits int, mode ServiceMode, tagMultiplier decimal.Decimal) int64 {
	_, rounded := types.FinalCreditCost(maxCredits, mode, tagMultiplier)
	return rounded
}

// NewIdempotencyKey generates a UUID v4 suitable for
// CreateTaskRequest.IdempotencyKey. Keys are scoped server-side to the
// caller's credential and remain valid for 24 hours.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
