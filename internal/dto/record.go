package dto

import (
	"time"

	"github.com/clientbook/client_records_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// timeFormat is the wire format for dates; records only carry a day
// granularity in this workflow.
const timeFormat = "2006-01-02"

// CreateRecordRequest defines the payload for creating a record under a client.
// TotalAmount is not accepted from the caller; the service derives it.
type CreateRecordRequest struct {
	ClientID    string          `json:"client_id" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	Transaction string          `json:"transaction" binding:"required"`
	Payments    decimal.Decimal `json:"payments"`
	Expenses    decimal.Decimal `json:"expenses"`
	Remarks     string          `json:"remarks"`
}

// ListRecordsParams defines query parameters for listing a client's records.
type ListRecordsParams struct {
	ClientID string `form:"client_id" binding:"required"`
}

// CountRecordsParams defines query parameters for the grouped active
// record count endpoint.
type CountRecordsParams struct {
	ClientIDs []string `form:"client_id" binding:"required"`
}

// RecordResponse is the API representation of a record.
type RecordResponse struct {
	RecordID     string          `json:"record_id"`
	ClientID     string          `json:"client_id"`
	Date         string          `json:"date"`
	Transaction  string          `json:"transaction"`
	Payments     decimal.Decimal `json:"payments"`
	Expenses     decimal.Decimal `json:"expenses"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Remarks      string          `json:"remarks"`
	RecordStatus string          `json:"record_status"`
}

// ListRecordsResponse wraps the list of records for a client.
type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
}

// CountRecordsResponse carries per-client active record counts.
type CountRecordsResponse struct {
	Counts map[string]int64 `json:"counts"`
}

// ToRecordResponse converts a domain.Record to its API representation.
func ToRecordResponse(record *domain.Record) RecordResponse {
	return RecordResponse{
		RecordID:     record.RecordID,
		ClientID:     record.ClientID,
		Date:         record.Date.Format(timeFormat),
		Transaction:  record.Transaction,
		Payments:     record.Payments,
		Expenses:     record.Expenses,
		TotalAmount:  record.TotalAmount,
		Remarks:      record.Remarks,
		RecordStatus: string(record.RecordStatus),
	}
}

// ToListRecordsResponse converts a slice of domain.Record to ListRecordsResponse.
func ToListRecordsResponse(records []domain.Record) ListRecordsResponse {
	recordResponses := make([]RecordResponse, len(records))
	for i := range records {
		recordResponses[i] = ToRecordResponse(&records[i])
	}
	return ListRecordsResponse{Records: recordResponses}
}

// ParseRecordDate parses the wire date format used by record payloads.
func ParseRecordDate(value string) (time.Time, error) {
	return time.Parse(timeFormat, value)
}
