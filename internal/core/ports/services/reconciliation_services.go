package services

import "context"

// SweepResult reports the outcome of a reconciliation sweep. Failures
// are keyed by client ID; a failed client never prevents the others
// from being reconciled.
type SweepResult struct {
	Reconciled int
	Failed     map[string]error
}

// ReconcilerSvc keeps the cached per-client transaction counter in sync
// with the live count of non-deleted records. The protocol is
// best-effort and eventually consistent: reads and writes go to two
// different stores with no shared transaction, and concurrent passes
// for the same client resolve by last write wins.
type ReconcilerSvc interface {
	// Reconcile recomputes the authoritative active record count for the
	// client and pushes it into the client store. If the count query
	// fails, no write is attempted.
	Reconcile(ctx context.Context, clientID string) error

	// Sweep runs Reconcile independently for each client. Fault isolation
	// is per client, not per sweep.
	Sweep(ctx context.Context, clientIDs []string) SweepResult
}
