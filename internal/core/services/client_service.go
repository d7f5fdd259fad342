package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clientbook/client_records_app/internal/apperrors"
	"github.com/clientbook/client_records_app/internal/core/domain"
	portsrepo "github.com/clientbook/client_records_app/internal/core/ports/repositories"
	portssvc "github.com/clientbook/client_records_app/internal/core/ports/services"
	"github.com/clientbook/client_records_app/internal/dto"
	"github.com/clientbook/client_records_app/internal/middleware"
	"github.com/google/uuid"
)

// ClientService implements client CRUD on top of the client repository.
type ClientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Ensure ClientService implements the facade interface
var _ portssvc.ClientSvcFacade = (*ClientService)(nil)

// CreateClient checks name uniqueness among non-deleted clients and then
// inserts. The check and the insert are two separate store calls; two
// concurrent creates with the same name can both pass the check. That
// race is a known gap of the check-then-insert pattern, not a guarantee
// this service makes.
func (s *ClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exists, err := s.clientRepo.ClientNameExists(ctx, req.ClientName)
	if err != nil {
		return nil, fmt.Errorf("failed to check client name existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("client with name %q already exists: %w", req.ClientName, apperrors.ErrDuplicate)
	}

	now := time.Now()
	client := domain.Client{
		ClientID:         uuid.NewString(),
		ClientName:       req.ClientName,
		ContactNumber:    req.ContactNumber,
		NoOfTransactions: 0,
		AccountStatus:    domain.ClientStatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

// UpdateClient updates name and contact number of an existing client.
func (s *ClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client %s for update: %w", clientID, err)
	}

	client.ClientName = req.ClientName
	client.ContactNumber = req.ContactNumber
	client.LastUpdatedAt = time.Now()

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, err)
	}
	return client, nil
}

// SetTransactionCount overwrites the cached transaction counter and
// returns the refreshed client.
func (s *ClientService) SetTransactionCount(ctx context.Context, clientID string, count int64) (*domain.Client, error) {
	if err := s.clientRepo.UpdateTransactionCount(ctx, clientID, count, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to set transaction count for client %s: %w", clientID, err)
	}
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload client %s after count update: %w", clientID, err)
	}
	return client, nil
}

// ListClients returns all clients, soft-deleted ones included.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.FindClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// GetClientByID retrieves a client by ID.
func (s *ClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %s: %w", clientID, err)
	}
	return client, nil
}

// SearchClientsByName performs a case-insensitive substring search.
func (s *ClientService) SearchClientsByName(ctx context.Context, nameSubstring string) ([]domain.Client, error) {
	clients, err := s.clientRepo.SearchClientsByName(ctx, nameSubstring)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients by name: %w", err)
	}
	return clients, nil
}

// DeleteClient flips the client's account status to Deleted. The row
// stays queryable afterwards.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.clientRepo.MarkClientDeleted(ctx, clientID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}

	logger.Info("Client soft-deleted", slog.String("client_id", clientID))
	return nil
}
