package models

// Budget event operations
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationLimit  = "set_limit"
)

// BudgetEvent is published to Kafka after every successful budget or limit mutation.
type BudgetEvent struct {
	EventID   string  `json:"event_id"`            // Unique event identifier
	Timestamp int64   `json:"timestamp"`           // Unix timestamp (seconds)
	UserID    string  `json:"user_id"`             // Owner of the budget
	BudgetID  string  `json:"budget_id,omitempty"` // Empty for limit changes
	Operation string  `json:"operation"`           // create, update, delete or set_limit
	Amount    float64 `json:"amount"`              // Budget amount or new limit
	Type      string  `json:"type,omitempty"`      // Budget category
}
