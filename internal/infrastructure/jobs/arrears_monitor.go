package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"growfin.backend/internal/domain/entities"
	"growfin.backend/internal/domain/repositories"
	"growfin.backend/pkg/clock"
	"growfin.backend/pkg/logger"
	"growfin.backend/pkg/metrics"
)

// ArrearsMonitorJob periodically scans the active loan book and refreshes the
// loans-in-arrears gauge. It never mutates loans; collection policy is a
// human decision.
type ArrearsMonitorJob struct {
	loanRepo repositories.LoanRepository
	clk      clock.Clock
	interval time.Duration
	stop     chan struct{}
}

func NewArrearsMonitorJob(loanRepo repositories.LoanRepository, clk clock.Clock, interval time.Duration) *ArrearsMonitorJob {
	return &ArrearsMonitorJob{
		loanRepo: loanRepo,
		clk:      clk,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *ArrearsMonitorJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting arrears monitor job", zap.Duration("interval", j.interval))

	// one immediate pass so the gauge is populated at boot
	j.scan(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "arrears monitor job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "arrears monitor job stopped")
			return
		case <-ticker.C:
			j.scan(ctx)
		}
	}
}

func (j *ArrearsMonitorJob) Stop() {
	close(j.stop)
}

func (j *ArrearsMonitorJob) scan(ctx context.Context) {
	loans, err := j.loanRepo.List(ctx, repositories.LoanFilter{Status: string(entities.LoanStatusActive)})
	if err != nil {
		logger.Error(ctx, "arrears scan failed", zap.Error(err))
		return
	}

	today := j.clk.Today()
	inArrears := 0
	for _, loan := range loans {
		if loan.Arrears(today).IsPositive() {
			inArrears++
		}
	}

	metrics.LoansInArrears.Set(float64(inArrears))
	logger.Debug(ctx, "arrears scan complete",
		zap.Int("active_loans", len(loans)),
		zap.Int("in_arrears", inArrears))
}
