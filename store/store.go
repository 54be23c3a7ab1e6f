package store

import (
	"errors"
	"time"
)

// SaleRecord is the business event recorded when an automated reply goes
// out, or when the dashboard registers a sale by hand. JSON field names
// match the dashboard front-end.
type SaleRecord struct {
	ThreadID  string    `json:"thread_id"`
	Customer  string    `json:"cliente"`
	Amount    float64   `json:"valor"`
	Timestamp time.Time `json:"data_hora"`
}

// Store persists the three collections shared between the reply loop and
// the HTTP surface: pending and answered thread ids (append-only sets) and
// the sale log. Implementations must be safe for concurrent use; a write
// that returns nil is durable before the next read by any caller.
type Store interface {
	Pending() ([]string, error)
	MarkPending(threadID string) error

	Answered() ([]string, error)
	MarkAnswered(threadID string) error

	Sales() ([]SaleRecord, error)
	AddSale(sale SaleRecord) error
	UpdateSale(index int, customer *string, amount *float64) (SaleRecord, error)
}

var ErrSaleNotFound = errors.New("store: sale not found")
