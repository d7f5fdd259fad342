package repositories

import (
	"context"
	"time"

	"github.com/clientbook/client_records_app/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its ID, deleted or not.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClients retrieves every client, including soft-deleted ones.
	// The listing view is responsible for ordering deleted clients last.
	FindClients(ctx context.Context) ([]domain.Client, error)

	// SearchClientsByName retrieves clients whose name contains the given
	// substring, case-insensitively.
	SearchClientsByName(ctx context.Context, nameSubstring string) ([]domain.Client, error)

	// ClientNameExists reports whether a non-deleted client with this exact
	// name already exists. Callers use this as a check-then-insert guard;
	// there is no store-level uniqueness constraint backing it.
	ClientNameExists(ctx context.Context, name string) (bool, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's name and contact number.
	UpdateClient(ctx context.Context, client domain.Client) error

	// UpdateTransactionCount overwrites the client's cached transaction
	// counter. Last write wins; no versioning is applied.
	UpdateTransactionCount(ctx context.Context, clientID string, count int64, updatedAt time.Time) error
}

// ClientLifecycleManager defines operations for managing client lifecycle
type ClientLifecycleManager interface {
	// MarkClientDeleted flips the client's account status to Deleted (soft delete).
	MarkClientDeleted(ctx context.Context, clientID string, deletedAt time.Time) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
	ClientLifecycleManager
}
