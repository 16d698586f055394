// Package reconciler repairs drift between account balances and the ledger.
// The ledger is the source of truth: whenever a balance disagrees with the
// sum of the owner's entry deltas, the balance is rewritten to that sum.
package reconciler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ewaste-kiosk-backend/internal/config"
	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/ewaste-kiosk-backend/internal/metrics"
	"github.com/panjf2000/ants/v2"
)

// Reconciler runs periodic balance audits over all accounts
type Reconciler struct {
	cfg        *config.ReconcilerConfig
	userRepo   user.Repository
	ledgerRepo ledger.Repository
	pool       *ants.Pool
	logger     *slog.Logger
}

// New creates a reconciler backed by a worker pool of the configured size
func New(
	cfg *config.ReconcilerConfig,
	userRepo user.Repository,
	ledgerRepo ledger.Repository,
	logger *slog.Logger,
) (*Reconciler, error) {
	pool, err := ants.NewPool(cfg.WorkerPoolSize)
	if err != nil {
		return nil, err
	}

	return &Reconciler{
		cfg:        cfg,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		pool:       pool,
		logger:     logger,
	}, nil
}

// Start runs reconciliation passes at the configured interval until the
// context is canceled. One pass runs immediately at startup.
func (r *Reconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.runPass(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			r.runPass(ctx)
		}
	}
}

// Shutdown releases the worker pool
func (r *Reconciler) Shutdown() {
	r.logger.Info("Shutting down reconciler worker pool", "running_workers", r.pool.Running())
	r.pool.Release()
}

// runPass pages through all non-admin accounts and audits each one on the
// worker pool, waiting for the page to drain before fetching the next
func (r *Reconciler) runPass(ctx context.Context) {
	start := time.Now()
	var audited, repaired int

	for offset := 0; ; offset += r.cfg.BatchSize {
		if ctx.Err() != nil {
			return
		}

		users, err := r.userRepo.ListByRole(ctx, user.RoleUser, r.cfg.BatchSize, offset)
		if err != nil {
			r.logger.Error("Failed to page users for reconciliation", "offset", offset, "error", err)
			return
		}
		if len(users) == 0 {
			break
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		for _, u := range users {
			u := u
			wg.Add(1)
			err := r.pool.Submit(func() {
				defer wg.Done()
				if r.auditAccount(ctx, u) {
					mu.Lock()
					repaired++
					mu.Unlock()
				}
			})
			if err != nil {
				wg.Done()
				r.logger.Error("Failed to submit audit job", "user_id", u.ID.String(), "error", err)
			}
		}
		wg.Wait()
		audited += len(users)

		if len(users) < r.cfg.BatchSize {
			break
		}
	}

	r.logger.Info("Reconciliation pass completed",
		"audited", audited,
		"repaired", repaired,
		"duration", time.Since(start),
	)
}

// auditAccount compares one balance against the ledger delta sum and
// rewrites it on mismatch. Reports whether a repair happened.
func (r *Reconciler) auditAccount(ctx context.Context, u *user.User) bool {
	summary, err := r.ledgerRepo.SummarizeOwner(ctx, u.ID)
	if err != nil {
		r.logger.Error("Failed to summarize owner ledger",
			"user_id", u.ID.String(),
			"error", err)
		return false
	}

	// Re-read the balance after the summary so an earn that landed in
	// between is not flagged as drift.
	current, err := r.userRepo.GetByID(ctx, u.ID)
	if err != nil {
		r.logger.Error("Failed to reload user for audit",
			"user_id", u.ID.String(),
			"error", err)
		return false
	}

	if current.Points == summary.DeltaSum {
		return false
	}

	r.logger.Warn("Balance drift detected, rewriting to ledger sum",
		"user_id", u.ID.String(),
		"balance", current.Points,
		"ledger_sum", summary.DeltaSum,
	)

	if err := r.userRepo.SetPoints(ctx, u.ID, summary.DeltaSum); err != nil {
		r.logger.Error("Failed to repair balance",
			"user_id", u.ID.String(),
			"error", err)
		return false
	}

	metrics.BalanceRepairsTotal.Inc()
	return true
}
