package repositories

import (
	"context"
	"time"

	"github.com/clientbook/client_records_app/internal/core/domain"
)

// RecordReader defines read operations for record data
type RecordReader interface {
	// FindRecordByID retrieves a specific record by its ID, deleted or not.
	FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error)

	// FindRecordsByClientID retrieves every record belonging to a client,
	// including soft-deleted ones.
	FindRecordsByClientID(ctx context.Context, clientID string) ([]domain.Record, error)

	// SearchRecordsByTransaction retrieves records whose transaction
	// description contains the given substring, case-insensitively.
	SearchRecordsByTransaction(ctx context.Context, transactionSubstring string) ([]domain.Record, error)

	// CountActiveRecords returns the authoritative count of non-deleted
	// records for a single client.
	CountActiveRecords(ctx context.Context, clientID string) (int64, error)

	// CountActiveRecordsForClients returns per-client active record counts.
	// Clients with no active records are absent from the result map.
	CountActiveRecordsForClients(ctx context.Context, clientIDs []string) (map[string]int64, error)
}

// RecordWriter defines write operations for record data
type RecordWriter interface {
	// SaveRecord persists a new record. Records are never updated after
	// creation; the only later mutation is a soft delete.
	SaveRecord(ctx context.Context, record domain.Record) error
}

// RecordLifecycleManager defines operations for managing record lifecycle
type RecordLifecycleManager interface {
	// MarkRecordDeleted flips the record's status to Deleted (soft delete).
	MarkRecordDeleted(ctx context.Context, recordID string, deletedAt time.Time) error
}

// RecordRepositoryFacade combines all record-related repository interfaces
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
	RecordLifecycleManager
}
