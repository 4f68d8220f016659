package billing

import (
	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Rounding policies for per-bracket tax amounts
const (
	RoundingFloor = "floor"
	RoundingCeil  = "ceil"
	RoundingRound = "round" // round half away from zero, to the nearest yen
)

// RoundingPolicy rounds a tax amount to whole yen according to the
// configured policy. Each tax bracket is rounded independently before
// summing; the grand total is never re-rounded.
type RoundingPolicy string

// ParseRoundingPolicy validates a configured policy string.
func ParseRoundingPolicy(s string) (RoundingPolicy, error) {
	switch s {
	case RoundingFloor, RoundingCeil, RoundingRound:
		return RoundingPolicy(s), nil
	}
	return "", shared.NewDomainError("INVALID_INPUT", "Rounding policy must be floor, ceil or round")
}

// Apply rounds the given amount to an integral value.
func (p RoundingPolicy) Apply(amount decimal.Decimal) decimal.Decimal {
	switch p {
	case RoundingCeil:
		return amount.Ceil()
	case RoundingRound:
		return amount.Round(0)
	default:
		return amount.Floor()
	}
}
