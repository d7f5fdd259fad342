package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus represents the lifecycle state of a financial record.
type RecordStatus string

const (
	RecordStatusActive  RecordStatus = "Active"
	RecordStatusDeleted RecordStatus = "Deleted"
)

// Record represents a single financial transaction belonging to a client.
// Financial fields are immutable after creation; the only mutation a
// record ever sees is a soft delete.
type Record struct {
	RecordID     string          `json:"recordID"`
	ClientID     string          `json:"clientID"`
	Date         time.Time       `json:"date"`
	Transaction  string          `json:"transaction"`
	Payments     decimal.Decimal `json:"payments"`
	Expenses     decimal.Decimal `json:"expenses"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Remarks      string          `json:"remarks"`
	RecordStatus RecordStatus    `json:"recordStatus"`
	AuditFields
}
