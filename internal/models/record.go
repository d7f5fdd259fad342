package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record mirrors a row of the record table.
type Record struct {
	RecordID     string          `db:"record_id"`
	ClientID     string          `db:"client_id"`
	Date         time.Time       `db:"date"`
	Transaction  string          `db:"transaction"`
	Payments     decimal.Decimal `db:"payments"`
	Expenses     decimal.Decimal `db:"expenses"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	Remarks      string          `db:"remarks"`
	RecordStatus string          `db:"record_status"`
	AuditFields
}
