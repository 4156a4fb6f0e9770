package worker

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/registry"
)

// RegistryFacade exposes the subset of application functionality required by the worker.
type RegistryFacade interface {
	Companies(ctx context.Context) ([]model.Company, error)
	ReloadRegistry(ctx context.Context, companyID uuid.UUID) (registry.Snapshot, error)
}

// RegistryRefresher periodically reloads every tenant's status registry and
// reports tenants that lack the load-bearing statuses.
type RegistryRefresher struct {
	facade   RegistryFacade
	interval time.Duration
	workers  int
	logger   *slog.Logger

	jobs   chan uuid.UUID
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRegistryRefresher constructs the refresher worker pool.
func NewRegistryRefresher(facade RegistryFacade, interval time.Duration, workers int, logger *slog.Logger) *RegistryRefresher {
	if workers <= 0 {
		workers = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &RegistryRefresher{
		facade:   facade,
		interval: interval,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan uuid.UUID, workers),
	}
}

// RefreshAll reloads every tenant in the calling goroutine and returns the
// companies whose registry is incomplete.
func (r *RegistryRefresher) RefreshAll(ctx context.Context) ([]uuid.UUID, error) {
	companies, err := r.facade.Companies(ctx)
	if err != nil {
		return nil, err
	}
	var incomplete []uuid.UUID
	for _, c := range companies {
		if !r.refresh(ctx, c.ID) {
			incomplete = append(incomplete, c.ID)
		}
	}
	return incomplete, nil
}

// Start launches background refreshing.
func (r *RegistryRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *RegistryRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *RegistryRefresher) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *RegistryRefresher) fetchAndDispatch(ctx context.Context) {
	companies, err := r.facade.Companies(ctx)
	if err != nil {
		r.logger.Error("list companies failed", slog.String("error", err.Error()))
		return
	}
	for _, c := range companies {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- c.ID:
		}
	}
}

func (r *RegistryRefresher) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case companyID, ok := <-r.jobs:
			if !ok {
				return
			}
			r.refresh(ctx, companyID)
		}
	}
}

// refresh reports whether the tenant registry loaded and is complete.
func (r *RegistryRefresher) refresh(ctx context.Context, companyID uuid.UUID) bool {
	snap, err := r.facade.ReloadRegistry(ctx, companyID)
	if err != nil {
		r.logger.Error("reload status registry failed",
			slog.String("company", companyID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
	if missing := snap.Missing(); len(missing) > 0 {
		r.logger.Warn("status registry lacks required statuses",
			slog.String("company", companyID.String()),
			slog.String("missing", strings.Join(missing, ", ")),
		)
		return false
	}
	return true
}
