package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BudgetType is the category of a budget entry.
type BudgetType string

// Supported budget categories
const (
	Necessity BudgetType = "necessity"
	Luxury    BudgetType = "luxury"
	Bills     BudgetType = "bills"
	Profit    BudgetType = "profit"
)

// BudgetTypes lists every supported category.
var BudgetTypes = []BudgetType{Necessity, Luxury, Bills, Profit}

// ParseBudgetType normalizes s and reports whether it names a supported category.
func ParseBudgetType(s string) (BudgetType, bool) {
	t := BudgetType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Necessity, Luxury, Bills, Profit:
		return t, true
	}
	return "", false
}

// BudgetDB represents a budget row in the database
type BudgetDB struct {
	BudgetID  uuid.UUID  `json:"id" db:"budget_id"`          // Unique budget identifier
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`       // Identifier of the budget's owner
	Name      string     `json:"name" db:"name"`             // Display name
	Amount    float64    `json:"amount" db:"amount"`         // Amount, no sign constraint
	Type      BudgetType `json:"type" db:"type"`             // Category
	CreatedAt time.Time  `json:"created_at" db:"created_at"` // Timestamp when the budget was created
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"` // Timestamp of the last update
}
