package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clientbook/client_records_app/internal/apperrors"
	"github.com/clientbook/client_records_app/internal/core/domain"
	portsrepo "github.com/clientbook/client_records_app/internal/core/ports/repositories"
	"github.com/clientbook/client_records_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository creates a pgx-backed client store.
func NewClientRepository(db *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{db: db}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// Helper to convert domain.Client to models.Client
func toModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:         d.ClientID,
		ClientName:       d.ClientName,
		ContactNumber:    d.ContactNumber,
		NoOfTransactions: d.NoOfTransactions,
		AccountStatus:    string(d.AccountStatus),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// Helper to convert models.Client to domain.Client
func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:         m.ClientID,
		ClientName:       m.ClientName,
		ContactNumber:    m.ContactNumber,
		NoOfTransactions: m.NoOfTransactions,
		AccountStatus:    domain.ClientStatus(m.AccountStatus),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const clientColumns = `client_id, client_name, contact_number, no_of_transactions, account_status, created_at, last_updated_at`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.ClientName,
		&m.ContactNumber,
		&m.NoOfTransactions,
		&m.AccountStatus,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	query := `
        INSERT INTO client (client_id, client_name, contact_number, no_of_transactions, account_status, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.db.Exec(ctx, query,
		m.ClientID,
		m.ClientName,
		m.ContactNumber,
		m.NoOfTransactions,
		m.AccountStatus,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE client_id = $1;`
	m, err := scanClient(r.db.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	d := toDomainClient(m)
	return &d, nil
}

func (r *PgxClientRepository) FindClients(ctx context.Context) ([]domain.Client, error) {
	// Deleted clients are included; the listing view sorts them last.
	query := `SELECT ` + clientColumns + ` FROM client ORDER BY client_name ASC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func (r *PgxClientRepository) SearchClientsByName(ctx context.Context, nameSubstring string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE client_name ILIKE '%' || $1 || '%' ORDER BY client_name ASC;`
	rows, err := r.db.Query(ctx, query, nameSubstring)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients by name: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func (r *PgxClientRepository) ClientNameExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM client WHERE client_name = $1 AND account_status <> $2);`
	var exists bool
	if err := r.db.QueryRow(ctx, query, name, string(domain.ClientStatusDeleted)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check client name existence: %w", err)
	}
	return exists, nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	query := `
        UPDATE client
        SET client_name = $1, contact_number = $2, last_updated_at = $3
        WHERE client_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, m.ClientName, m.ContactNumber, m.LastUpdatedAt, m.ClientID)
	if err != nil {
		return fmt.Errorf("failed to execute update client query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClientRepository) UpdateTransactionCount(ctx context.Context, clientID string, count int64, updatedAt time.Time) error {
	// Plain overwrite, no version column. Concurrent reconciliation
	// passes for the same client resolve by last write wins.
	query := `
        UPDATE client
        SET no_of_transactions = $1, last_updated_at = $2
        WHERE client_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, count, updatedAt, clientID)
	if err != nil {
		return fmt.Errorf("failed to update transaction count: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClientRepository) MarkClientDeleted(ctx context.Context, clientID string, deletedAt time.Time) error {
	query := `
        UPDATE client
        SET account_status = $1, last_updated_at = $2
        WHERE client_id = $3 AND account_status <> $1;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(domain.ClientStatusDeleted), deletedAt, clientID)
	if err != nil {
		return fmt.Errorf("failed to mark client as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func collectClients(rows pgx.Rows) ([]domain.Client, error) {
	clients := []domain.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, toDomainClient(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}
	return clients, nil
}
