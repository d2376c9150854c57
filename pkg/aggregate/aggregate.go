// Package aggregate derives totals, per-category sums and limit state from a list of budget entries.
//
// Sums are computed with decimal arithmetic so that totals are exact for the amounts users type in
// (100.1 + 200.2 totals 300.3, not 300.29999999999995).
package aggregate

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidLimit is returned for limits that are not positive finite numbers.
var ErrInvalidLimit = errors.New("invalid limit value")

// LimitState is the position of the total relative to the limit.
type LimitState string

const (
	LimitUnset LimitState = "unset"
	LimitBelow LimitState = "below"
	LimitAt    LimitState = "at"
	LimitAbove LimitState = "above"
)

// Entry is the part of a budget that aggregation looks at.
type Entry struct {
	Type   string
	Amount float64
}

// Summary is the aggregated view of a user's budgets.
type Summary struct {
	TotalMoney        float64            `json:"total_money"`
	CategoryTotals    map[string]float64 `json:"category_totals"`
	Limit             *float64           `json:"limit"`
	LimitState        LimitState         `json:"limit_state"`
	BelowLimitWarning bool               `json:"below_limit_warning"`
	OverLimitAlert    bool               `json:"over_limit_alert"`
}

func sum(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return total
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Total returns the sum of all amounts.
func Total(entries []Entry) float64 {
	return toFloat(sum(entries))
}

// CategoryTotals returns the sum of amounts grouped by type.
func CategoryTotals(entries []Entry) map[string]float64 {
	grouped := make(map[string]decimal.Decimal)
	for _, e := range entries {
		acc, ok := grouped[e.Type]
		if !ok {
			acc = decimal.Zero
		}
		grouped[e.Type] = acc.Add(decimal.NewFromFloat(e.Amount))
	}

	totals := make(map[string]float64, len(grouped))
	for t, d := range grouped {
		totals[t] = toFloat(d)
	}
	return totals
}

// CompareLimit places total relative to limit. A nil limit is LimitUnset.
func CompareLimit(total float64, limit *float64) LimitState {
	if limit == nil {
		return LimitUnset
	}
	switch decimal.NewFromFloat(total).Cmp(decimal.NewFromFloat(*limit)) {
	case -1:
		return LimitBelow
	case 1:
		return LimitAbove
	default:
		return LimitAt
	}
}

// Summarize aggregates entries and compares the total against limit.
// BelowLimitWarning and OverLimitAlert are never both true; neither fires at equality or without a limit.
func Summarize(entries []Entry, limit *float64) Summary {
	total := sum(entries)
	state := LimitUnset
	if limit != nil {
		state = CompareLimit(toFloat(total), limit)
	}

	return Summary{
		TotalMoney:        toFloat(total),
		CategoryTotals:    CategoryTotals(entries),
		Limit:             limit,
		LimitState:        state,
		BelowLimitWarning: state == LimitBelow,
		OverLimitAlert:    state == LimitAbove,
	}
}

// Amounts and limits are stored as NUMERIC(20,2).
const amountScale = 2

var maxAmount = decimal.New(1, 18)

// RoundAmount rounds a to the stored precision, half away from zero.
func RoundAmount(a float64) float64 {
	return toFloat(decimal.NewFromFloat(a).Round(amountScale))
}

// ValidAmount reports whether a is finite and fits the stored precision once rounded.
func ValidAmount(a float64) bool {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return false
	}
	return decimal.NewFromFloat(a).Round(amountScale).Abs().LessThan(maxAmount)
}

// ValidateLimit rejects limits that are not positive finite numbers at the stored precision.
// 0.004 is rejected because it is stored as 0.00.
func ValidateLimit(limit float64) error {
	if !ValidAmount(limit) || !decimal.NewFromFloat(limit).Round(amountScale).IsPositive() {
		return ErrInvalidLimit
	}
	return nil
}

// ParseLimitInput parses user-typed limit input, applying ValidateLimit.
func ParseLimitInput(input string) (float64, error) {
	limit, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, ErrInvalidLimit
	}
	if err := ValidateLimit(limit); err != nil {
		return 0, err
	}
	return limit, nil
}
