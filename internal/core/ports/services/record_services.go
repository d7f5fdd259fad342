package services

import (
	"context"

	"github.com/clientbook/client_records_app/internal/core/domain"
	"github.com/clientbook/client_records_app/internal/dto"
)

// RecordSvcFacade defines the record operations exposed to handlers.
// Create and Delete trigger a best-effort reconciliation of the owning
// client's cached transaction counter; a reconciliation failure never
// fails the primary operation.
type RecordSvcFacade interface {
	// CreateRecord creates a new record under a client and triggers
	// reconciliation for that client.
	CreateRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.Record, error)

	// DeleteRecord soft-deletes a record and triggers reconciliation for
	// the owning client.
	DeleteRecord(ctx context.Context, recordID string) error

	// GetRecordByID retrieves a record by ID.
	GetRecordByID(ctx context.Context, recordID string) (*domain.Record, error)

	// ListRecordsForClient returns all records of a client, soft-deleted
	// ones included.
	ListRecordsForClient(ctx context.Context, clientID string) ([]domain.Record, error)

	// SearchRecordsByTransaction performs a case-insensitive substring
	// search on record transaction descriptions.
	SearchRecordsByTransaction(ctx context.Context, transactionSubstring string) ([]domain.Record, error)

	// CountActiveRecords returns per-client counts of non-deleted records.
	CountActiveRecords(ctx context.Context, clientIDs []string) (map[string]int64, error)
}
