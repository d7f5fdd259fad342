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

type PgxRecordRepository struct {
	db *pgxpool.Pool
}

// NewRecordRepository creates a pgx-backed record store.
func NewRecordRepository(db *pgxpool.Pool) portsrepo.RecordRepositoryFacade {
	return &PgxRecordRepository{db: db}
}

// Ensure PgxRecordRepository implements portsrepo.RecordRepositoryFacade
var _ portsrepo.RecordRepositoryFacade = (*PgxRecordRepository)(nil)

func toModelRecord(d domain.Record) models.Record {
	return models.Record{
		RecordID:     d.RecordID,
		ClientID:     d.ClientID,
		Date:         d.Date,
		Transaction:  d.Transaction,
		Payments:     d.Payments,
		Expenses:     d.Expenses,
		TotalAmount:  d.TotalAmount,
		Remarks:      d.Remarks,
		RecordStatus: string(d.RecordStatus),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainRecord(m models.Record) domain.Record {
	return domain.Record{
		RecordID:     m.RecordID,
		ClientID:     m.ClientID,
		Date:         m.Date,
		Transaction:  m.Transaction,
		Payments:     m.Payments,
		Expenses:     m.Expenses,
		TotalAmount:  m.TotalAmount,
		Remarks:      m.Remarks,
		RecordStatus: domain.RecordStatus(m.RecordStatus),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// "transaction" and "date" are reserved-ish words, so record columns are
// always quoted.
const recordColumns = `record_id, client_id, "date", "transaction", payments, expenses, total_amount, remarks, record_status, created_at, last_updated_at`

func scanRecord(row pgx.Row) (models.Record, error) {
	var m models.Record
	err := row.Scan(
		&m.RecordID,
		&m.ClientID,
		&m.Date,
		&m.Transaction,
		&m.Payments,
		&m.Expenses,
		&m.TotalAmount,
		&m.Remarks,
		&m.RecordStatus,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxRecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	m := toModelRecord(record)
	query := `
        INSERT INTO record (record_id, client_id, "date", "transaction", payments, expenses, total_amount, remarks, record_status, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.RecordID,
		m.ClientID,
		m.Date,
		m.Transaction,
		m.Payments,
		m.Expenses,
		m.TotalAmount,
		m.Remarks,
		m.RecordStatus,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM record WHERE record_id = $1;`
	m, err := scanRecord(r.db.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record by ID %s: %w", recordID, err)
	}
	d := toDomainRecord(m)
	return &d, nil
}

func (r *PgxRecordRepository) FindRecordsByClientID(ctx context.Context, clientID string) ([]domain.Record, error) {
	// Deleted records stay visible in the listing with their status.
	query := `SELECT ` + recordColumns + ` FROM record WHERE client_id = $1 ORDER BY "date" DESC, created_at DESC;`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records for client %s: %w", clientID, err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *PgxRecordRepository) SearchRecordsByTransaction(ctx context.Context, transactionSubstring string) ([]domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM record WHERE "transaction" ILIKE '%' || $1 || '%' ORDER BY "date" DESC;`
	rows, err := r.db.Query(ctx, query, transactionSubstring)
	if err != nil {
		return nil, fmt.Errorf("failed to search records by transaction: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *PgxRecordRepository) CountActiveRecords(ctx context.Context, clientID string) (int64, error) {
	query := `SELECT COUNT(*) FROM record WHERE client_id = $1 AND record_status = $2;`
	var count int64
	if err := r.db.QueryRow(ctx, query, clientID, string(domain.RecordStatusActive)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active records for client %s: %w", clientID, err)
	}
	return count, nil
}

func (r *PgxRecordRepository) CountActiveRecordsForClients(ctx context.Context, clientIDs []string) (map[string]int64, error) {
	query := `
        SELECT client_id, COUNT(*)
        FROM record
        WHERE client_id = ANY($1) AND record_status = $2
        GROUP BY client_id;
    `
	rows, err := r.db.Query(ctx, query, clientIDs, string(domain.RecordStatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to count active records per client: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64, len(clientIDs))
	for rows.Next() {
		var clientID string
		var count int64
		if err := rows.Scan(&clientID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan record count row: %w", err)
		}
		counts[clientID] = count
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating record count rows: %w", rows.Err())
	}
	return counts, nil
}

func (r *PgxRecordRepository) MarkRecordDeleted(ctx context.Context, recordID string, deletedAt time.Time) error {
	query := `
        UPDATE record
        SET record_status = $1, last_updated_at = $2
        WHERE record_id = $3 AND record_status <> $1;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(domain.RecordStatusDeleted), deletedAt, recordID)
	if err != nil {
		return fmt.Errorf("failed to mark record as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("record not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func collectRecords(rows pgx.Rows) ([]domain.Record, error) {
	records := []domain.Record{}
	for rows.Next() {
		m, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, toDomainRecord(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", rows.Err())
	}
	return records, nil
}
