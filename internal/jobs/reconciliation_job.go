package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReconciliationJob periodically sweeps orders stuck in AwaitingEscrow whose
// deposit flags are both set and pushes them to ReadyForPickup. The sweep is
// the safety net for orders whose automatic advancement was missed.
type ReconciliationJob struct {
	handler  commands.ReconcileOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationJob creates a new job running the escrow reconciliation
// sweep on the given cron schedule (six-field expression with seconds).
func NewReconciliationJob(
	handler commands.ReconcileOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "reconciliation_job"),
	}
}

// Start begins the reconciliation sweep on the configured schedule.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
