package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds published by the API.
const (
	EventPaymentSettled  = "payment_settled"
	EventPaymentReverted = "payment_reverted"
	EventExpenseRecorded = "expense_recorded"
)

// ActivityEvent carries one ledger or expense change to the export worker.
// It holds a denormalized snapshot so the worker does not need to read the
// database to build a spreadsheet row.
type ActivityEvent struct {
	Kind        string    `json:"kind"`
	UserID      string    `json:"userId"`
	RefID       string    `json:"refId"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	Month       int       `json:"month,omitempty"`
	Year        int       `json:"year,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e *ActivityEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ActivityEventFromJSON(data []byte) (*ActivityEvent, error) {
	var event ActivityEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
