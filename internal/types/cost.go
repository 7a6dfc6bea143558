package types

import (
	"github.com/shopspring/decimal"

	cverr "github.com/codevf/codevf-go/internal/errors"
)

// DefaultTagMultiplier applies when no tag is supplied: the
// general-purpose tag with multiplier 1.00.
var DefaultTagMultiplier = decimal.NewFromInt(1)

// FinalCreditCost computes maxCredits × slaMultiplier(mode) × tagMultiplier
// on exact decimals and returns both the unrounded product and the final
// integer cost, rounded up to the next whole credit. Ceiling is used so
// the platform never under-reserves against fractional multipliers.
func FinalCreditCost(maxCredits int, mode ServiceMode, tagMultiplier decimal.Decimal) (exact decimal.Decimal, rounded int64) {
	exact = decimal.NewFromInt(int64(maxCredits)).
		Mul(mode.SLAMultiplier()).
		Mul(tagMultiplier)
	return exact, exact.Ceil().IntPart()
}

// CheckCreditBudget mirrors the server's rejection of submissions whose
// rounded final cost would exceed the platform credit ceiling, so the
// caller gets the same outcome without a network round trip.
func CheckCreditBudget(maxCredits int, mode ServiceMode, tagMultiplier decimal.Decimal) error {
	_, rounded := FinalCreditCost(maxCredits, mode, tagMultiplier)
	if rounded > MaxCredits {
		return cverr.NewValidation(cverr.KindMaxCreditsExceeded,
			"final cost %d credits (maxCredits %d after multipliers) exceeds the %d credit ceiling",
			rounded, maxCredits, MaxCredits)
	}
	return nil
}
