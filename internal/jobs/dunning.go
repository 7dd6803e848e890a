package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"rentflow/internal/services"
)

// DunningJob runs the overdue-invoice sweep on a cron schedule.
type DunningJob struct {
	cron    *cron.Cron
	dunning *services.DunningService
	logger  *zap.Logger
}

func NewDunningJob(dunning *services.DunningService, logger *zap.Logger) *DunningJob {
	return &DunningJob{
		cron:    cron.New(),
		dunning: dunning,
		logger:  logger,
	}
}

// Start registers the sweep and launches the scheduler.
func (j *DunningJob) Start(spec string) error {
	_, err := j.cron.AddFunc(spec, j.run)
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("dunning job scheduled", zap.String("spec", spec))
	return nil
}

func (j *DunningJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *DunningJob) run() {
	started := time.Now()
	sent := j.dunning.ProcessOverdueInvoices(started)
	j.logger.Info("dunning sweep finished",
		zap.Int("notices_sent", sent),
		zap.Duration("took", time.Since(started)))
}
