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

// RecordService implements record CRUD and triggers counter
// reconciliation after every record mutation. Reconciliation is a
// secondary, best-effort side effect: its failure is downgraded to a
// warning so the user-visible operation still succeeds with a possibly
// stale counter.
type RecordService struct {
	recordRepo portsrepo.RecordRepositoryFacade
	reconciler portssvc.ReconcilerSvc
}

// NewRecordService creates a new RecordService.
func NewRecordService(recordRepo portsrepo.RecordRepositoryFacade, reconciler portssvc.ReconcilerSvc) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		reconciler: reconciler,
	}
}

// Ensure RecordService implements the facade interface
var _ portssvc.RecordSvcFacade = (*RecordService)(nil)

// CreateRecord creates a new active record under a client. The total
// amount is derived server-side as payments minus expenses. After the
// save, the owning client's counter is reconciled best-effort.
func (s *RecordService) CreateRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.Record, error) {
	date, err := dto.ParseRecordDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid record date %q: %w", req.Date, apperrors.ErrValidation)
	}

	now := time.Now()
	record := domain.Record{
		RecordID:     uuid.NewString(),
		ClientID:     req.ClientID,
		Date:         date,
		Transaction:  req.Transaction,
		Payments:     req.Payments,
		Expenses:     req.Expenses,
		TotalAmount:  req.Payments.Sub(req.Expenses),
		Remarks:      req.Remarks,
		RecordStatus: domain.RecordStatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.recordRepo.SaveRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	s.reconcileBestEffort(ctx, record.ClientID)
	return &record, nil
}

// DeleteRecord soft-deletes a record and reconciles the owning client's
// counter best-effort.
func (s *RecordService) DeleteRecord(ctx context.Context, recordID string) error {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("failed to find record %s for deletion: %w", recordID, err)
	}

	if err := s.recordRepo.MarkRecordDeleted(ctx, recordID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete record %s: %w", recordID, err)
	}

	s.reconcileBestEffort(ctx, record.ClientID)
	return nil
}

// GetRecordByID retrieves a record by ID, deleted or not.
func (s *RecordService) GetRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", recordID, err)
	}
	return record, nil
}

// ListRecordsForClient returns all records of a client, soft-deleted
// ones included.
func (s *RecordService) ListRecordsForClient(ctx context.Context, clientID string) ([]domain.Record, error) {
	records, err := s.recordRepo.FindRecordsByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records for client %s: %w", clientID, err)
	}
	return records, nil
}

// SearchRecordsByTransaction performs a case-insensitive substring
// search on transaction descriptions.
func (s *RecordService) SearchRecordsByTransaction(ctx context.Context, transactionSubstring string) ([]domain.Record, error) {
	records, err := s.recordRepo.SearchRecordsByTransaction(ctx, transactionSubstring)
	if err != nil {
		return nil, fmt.Errorf("failed to search records by transaction: %w", err)
	}
	return records, nil
}

// CountActiveRecords returns per-client active record counts.
func (s *RecordService) CountActiveRecords(ctx context.Context, clientIDs []string) (map[string]int64, error) {
	counts, err := s.recordRepo.CountActiveRecordsForClients(ctx, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count active records: %w", err)
	}
	return counts, nil
}

// reconcileBestEffort triggers reconciliation for a client and
// downgrades any failure to a warning. The primary operation the caller
// performed must succeed independently of whether the cached counter
// could be refreshed; a stale counter self-heals on the next trigger.
func (s *RecordService) reconcileBestEffort(ctx context.Context, clientID string) {
	if err := s.reconciler.Reconcile(ctx, clientID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Counter reconciliation failed after record mutation",
			slog.String("client_id", clientID),
			slog.String("error", err.Error()),
		)
	}
}
