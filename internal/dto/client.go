package dto

import (
	"time"

	"github.com/clientbook/client_records_app/internal/core/domain"
)

// CreateClientRequest defines the payload for creating a client.
type CreateClientRequest struct {
	ClientName    string `json:"client_name" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// The cached transaction counter is deliberately not updatable here; it
// has its own endpoint so the reconciliation write path stays explicit.
type UpdateClientRequest struct {
	ClientName    string `json:"client_name" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required"`
}

// SetTransactionCountRequest defines the payload for overwriting the
// cached transaction counter of a client.
type SetTransactionCountRequest struct {
	NoOfTransactions *int64 `json:"no_of_transactions" binding:"required,min=0"`
}

// SearchParams defines query parameters for the column/value search
// endpoints. Only whitelisted columns are accepted per entity.
type SearchParams struct {
	Col string `form:"col" binding:"required"`
	Val string `form:"val"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	// Reconcile requests a best-effort refresh sweep over the listed
	// clients before the response is built.
	Reconcile bool `form:"reconcile,default=false"`
}

// ClientResponse is the API representation of a client.
type ClientResponse struct {
	ClientID         string `json:"client_id"`
	ClientName       string `json:"client_name"`
	ContactNumber    string `json:"contact_number"`
	NoOfTransactions int64  `json:"no_of_transactions"`
	AccountStatus    string `json:"account_status"`
	CreatedAt        string `json:"created_at"`
	LastUpdatedAt    string `json:"last_updated_at"`
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse converts a domain.Client to its API representation.
func ToClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:         client.ClientID,
		ClientName:       client.ClientName,
		ContactNumber:    client.ContactNumber,
		NoOfTransactions: client.NoOfTransactions,
		AccountStatus:    string(client.AccountStatus),
		CreatedAt:        client.CreatedAt.Format(time.RFC3339),
		LastUpdatedAt:    client.LastUpdatedAt.Format(time.RFC3339),
	}
}

// ToListClientsResponse converts a slice of domain.Client to ListClientsResponse.
func ToListClientsResponse(clients []domain.Client) ListClientsResponse {
	clientResponses := make([]ClientResponse, len(clients))
	for i := range clients {
		clientResponses[i] = ToClientResponse(&clients[i])
	}
	return ListClientsResponse{Clients: clientResponses}
}
