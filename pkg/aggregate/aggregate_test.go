package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestTotalAndCategoryTotals(t *testing.T) {
	entries := []Entry{
		{Type: "necessity", Amount: 100},
		{Type: "luxury", Amount: 50},
	}

	assert.Equal(t, 150.0, Total(entries))
	assert.Equal(t, map[string]float64{"necessity": 100, "luxury": 50}, CategoryTotals(entries))
}

func TestTotal_IsExact(t *testing.T) {
	entries := []Entry{
		{Type: "bills", Amount: 0.1},
		{Type: "bills", Amount: 0.2},
		{Type: "profit", Amount: 100.1},
		{Type: "profit", Amount: 200.2},
	}

	assert.Equal(t, 300.6, Total(entries))
	assert.Equal(t, map[string]float64{"bills": 0.3, "profit": 300.3}, CategoryTotals(entries))
}

func TestTotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
	assert.Empty(t, CategoryTotals(nil))
}

func TestCompareLimit(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		limit *float64
		want  LimitState
	}{
		{"unset", 300, nil, LimitUnset},
		{"below", 300, ptr(1000), LimitBelow},
		{"at", 1000, ptr(1000), LimitAt},
		{"above", 1500, ptr(1000), LimitAbove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareLimit(tt.total, tt.limit))
		})
	}
}

func TestSummarize(t *testing.T) {
	budgets := []Entry{
		{Type: "necessity", Amount: 100},
		{Type: "luxury", Amount: 150},
		{Type: "bills", Amount: 50},
	}

	tests := []struct {
		name      string
		entries   []Entry
		limit     *float64
		wantState LimitState
		wantBelow bool
		wantOver  bool
	}{
		{"limit 1000 spend 300 warns below", budgets, ptr(1000), LimitBelow, true, false},
		{"limit 100 spend 300 alerts over", budgets, ptr(100), LimitAbove, false, true},
		{"limit equal to spend is silent", budgets, ptr(300), LimitAt, false, false},
		{"no limit is silent", budgets, nil, LimitUnset, false, false},
		{"no budgets with limit", nil, ptr(10), LimitBelow, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.entries, tt.limit)
			assert.Equal(t, tt.wantState, s.LimitState)
			assert.Equal(t, tt.wantBelow, s.BelowLimitWarning)
			assert.Equal(t, tt.wantOver, s.OverLimitAlert)
			assert.False(t, s.BelowLimitWarning && s.OverLimitAlert)
			assert.Equal(t, tt.limit, s.Limit)
		})
	}
}

func TestSummarize_GroceriesAndEntertainment(t *testing.T) {
	s := Summarize([]Entry{
		{Type: "necessity", Amount: 100},
		{Type: "luxury", Amount: 50},
	}, nil)

	assert.Equal(t, 150.0, s.TotalMoney)
	assert.Equal(t, map[string]float64{"necessity": 100, "luxury": 50}, s.CategoryTotals)
}

func TestValidateLimit(t *testing.T) {
	assert.NoError(t, ValidateLimit(500))
	assert.ErrorIs(t, ValidateLimit(0), ErrInvalidLimit)
	assert.ErrorIs(t, ValidateLimit(-100), ErrInvalidLimit)
	assert.ErrorIs(t, ValidateLimit(math.NaN()), ErrInvalidLimit)
	assert.ErrorIs(t, ValidateLimit(math.Inf(1)), ErrInvalidLimit)

	// rounds to 0.00 in storage
	assert.ErrorIs(t, ValidateLimit(0.004), ErrInvalidLimit)
	assert.NoError(t, ValidateLimit(0.005))
	assert.NoError(t, ValidateLimit(0.01))
	assert.ErrorIs(t, ValidateLimit(1e18), ErrInvalidLimit)
	assert.NoError(t, ValidateLimit(999_999_999_999_999))
}

func TestRoundAmount(t *testing.T) {
	assert.Equal(t, 12.35, RoundAmount(12.345))
	assert.Equal(t, -12.35, RoundAmount(-12.345))
	assert.Equal(t, 0.0, RoundAmount(0.004))
	assert.Equal(t, 100.1, RoundAmount(100.1))
}

func TestValidAmount(t *testing.T) {
	assert.True(t, ValidAmount(-250.75))
	assert.True(t, ValidAmount(0))
	assert.True(t, ValidAmount(-999_999_999_999_999))
	assert.False(t, ValidAmount(1e18))
	assert.False(t, ValidAmount(-1e18))
	assert.False(t, ValidAmount(math.NaN()))
	assert.False(t, ValidAmount(math.Inf(-1)))
}

func TestParseLimitInput(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"500", 500, false},
		{" 1000.50 ", 1000.5, false},
		{"0", 0, true},
		{"0.004", 0, true},
		{"-100", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLimitInput(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLimit)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
