package services

import (
	"context"

	"github.com/clientbook/client_records_app/internal/core/domain"
	"github.com/clientbook/client_records_app/internal/dto"
)

// ClientSvcFacade defines the client operations exposed to handlers.
type ClientSvcFacade interface {
	// CreateClient creates a new client with a zero transaction counter.
	// Returns apperrors.ErrDuplicate when a non-deleted client with the
	// same name already exists.
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error)

	// UpdateClient updates a client's name and contact number.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)

	// SetTransactionCount overwrites the client's cached transaction counter.
	SetTransactionCount(ctx context.Context, clientID string, count int64) (*domain.Client, error)

	// ListClients returns all clients, soft-deleted ones included.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// GetClientByID retrieves a client by ID.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// SearchClientsByName performs a case-insensitive substring search on
	// client names.
	SearchClientsByName(ctx context.Context, nameSubstring string) ([]domain.Client, error)

	// DeleteClient soft-deletes a client.
	DeleteClient(ctx context.Context, clientID string) error
}
