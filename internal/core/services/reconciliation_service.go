package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/clientbook/client_records_app/internal/core/ports/repositories"
	portssvc "github.com/clientbook/client_records_app/internal/core/ports/services"
	"github.com/clientbook/client_records_app/internal/middleware"
)

// ReconciliationService keeps each client's cached no_of_transactions
// counter in sync with the live count of non-deleted records for that
// client. The count read and the counter write are two independent,
// individually failable calls against two different stores; there is no
// shared transaction, no locking and no versioning. Concurrent passes
// for the same client resolve by last write wins, so the stored counter
// always equals some count snapshot taken during the overlap window,
// never a merged value.
type ReconciliationService struct {
	clientRepo portsrepo.ClientWriter
	recordRepo portsrepo.RecordReader
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(clientRepo portsrepo.ClientWriter, recordRepo portsrepo.RecordReader) *ReconciliationService {
	return &ReconciliationService{
		clientRepo: clientRepo,
		recordRepo: recordRepo,
	}
}

// Ensure ReconciliationService implements the reconciler interface
var _ portssvc.ReconcilerSvc = (*ReconciliationService)(nil)

// Reconcile recomputes the authoritative active record count for the
// client and pushes it into the client store. If the count query fails
// the pass aborts without writing, so a stale or default value is never
// pushed. If the push fails (the client was deleted in between, or a
// transient store fault) the counter simply stays stale until the next
// triggering event or sweep; there is no automatic retry.
func (s *ReconciliationService) Reconcile(ctx context.Context, clientID string) error {
	activeCount, err := s.recordRepo.CountActiveRecords(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to count active records for client %s: %w", clientID, err)
	}

	if err := s.clientRepo.UpdateTransactionCount(ctx, clientID, activeCount, time.Now()); err != nil {
		return fmt.Errorf("failed to push transaction count %d for client %s: %w", activeCount, clientID, err)
	}

	return nil
}

// Sweep runs Reconcile independently for each client. A failure for one
// client is recorded and logged but never aborts the sweep; the
// remaining clients still get reconciled.
func (s *ReconciliationService) Sweep(ctx context.Context, clientIDs []string) portssvc.SweepResult {
	logger := middleware.GetLoggerFromCtx(ctx)

	result := portssvc.SweepResult{Failed: make(map[string]error)}
	for _, clientID := range clientIDs {
		if err := s.Reconcile(ctx, clientID); err != nil {
			logger.Warn("Reconciliation failed for client, counter stays stale",
				slog.String("client_id", clientID),
				slog.String("error", err.Error()),
			)
			result.Failed[clientID] = err
			continue
		}
		result.Reconciled++
	}
	return result
}
