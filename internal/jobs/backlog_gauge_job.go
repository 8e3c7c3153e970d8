package jobs

import (
	"context"
	"time"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/pkg/logger"
	"parcels/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const backlogGaugeJobName = "backlog_gauge"

// DefaultBacklogSchedule runs the refresh every 30 seconds.
const DefaultBacklogSchedule = "*/30 * * * * *"

type backlogReader interface {
	Backlog(ctx context.Context, query queries.BacklogQuery) (queries.Backlog, error)
}

// BacklogGaugeJob refreshes the awaiting-pickup and with-problems gauges.
type BacklogGaugeJob struct {
	reader   backlogReader
	gauges   *metrics.ParcelMetrics
	runs     *metrics.CronJobMetrics
	schedule string
	cron     *cron.Cron
	log      *logger.Logger
}

// NewBacklogGaugeJob creates the job. An empty schedule uses DefaultBacklogSchedule;
// schedules are six-field cron expressions with seconds.
func NewBacklogGaugeJob(
	reader backlogReader,
	gauges *metrics.ParcelMetrics,
	runs *metrics.CronJobMetrics,
	schedule string,
	log *logger.Logger,
) *BacklogGaugeJob {
	if schedule == "" {
		schedule = DefaultBacklogSchedule
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BacklogGaugeJob{
		reader:   reader,
		gauges:   gauges,
		runs:     runs,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		log:      log.Component("backlog_gauge_job"),
	}
}

// Start schedules the refresh and runs it once immediately.
func (j *BacklogGaugeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	_ = j.RunOnce(context.Background())
	j.cron.Start()

	ctx := j.log.WithField(context.Background(), "schedule", j.schedule)
	j.log.Info(ctx, "backlog gauge job started")
	return nil
}

// RunOnce reads the backlog and publishes it to the gauges.
func (j *BacklogGaugeJob) RunOnce(ctx context.Context) error {
	started := time.Now()
	defer func() {
		j.runs.ObserveDuration(backlogGaugeJobName, time.Since(started))
	}()

	backlog, err := j.reader.Backlog(ctx, queries.NewBacklogQuery())
	if err != nil {
		j.runs.IncFailure(backlogGaugeJobName)
		j.log.Error(ctx, "backlog gauge refresh failed", err)
		return err
	}

	j.gauges.SetAwaitingPickup(backlog.AwaitingPickup)
	j.gauges.SetWithProblems(backlog.WithProblems)
	j.runs.IncSuccess(backlogGaugeJobName)
	return nil
}

// Stop waits for a running refresh to finish.
func (j *BacklogGaugeJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info(context.Background(), "backlog gauge job stopped")
}
