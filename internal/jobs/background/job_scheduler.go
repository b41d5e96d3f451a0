package background

import (
	"context"
	"log"
	"sync"
	"time"

	"eggmart/internal/analytics"
	"eggmart/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the recurring maintenance jobs: metrics refresh and
// snapshot export.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.Service
	exporter     *jobs.SnapshotExporter
	jobJobs      map[string]gocron.Job
	mu           sync.RWMutex
}

// NewJobScheduler creates a new job scheduler. The exporter may be nil when
// no archive backend is configured.
func NewJobScheduler(analyticsSvc *analytics.Service, exporter *jobs.SnapshotExporter) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		exporter:     exporter,
		jobJobs:      make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	metricsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshMetrics, context.Background()),
		gocron.WithName("distributor-metrics-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create metrics refresh job: %v", err)
	} else {
		js.jobJobs["metrics-refresh"] = metricsJob
	}

	if js.exporter != nil {
		snapshotJob, err := js.scheduler.NewJob(
			gocron.DurationJob(1*time.Hour),
			gocron.NewTask(js.exportSnapshot, context.Background()),
			gocron.WithName("distributor-snapshot-export"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			log.Printf("Failed to create snapshot export job: %v", err)
		} else {
			js.jobJobs["snapshot-export"] = snapshotJob
		}
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

func (js *JobScheduler) refreshMetrics(ctx context.Context) error {
	if _, err := js.analyticsSvc.Refresh(ctx); err != nil {
		log.Printf("Failed to refresh distributor metrics: %v", err)
		return err
	}
	return nil
}

func (js *JobScheduler) exportSnapshot(ctx context.Context) error {
	if err := js.exporter.Run(ctx); err != nil {
		log.Printf("Failed to export distributor snapshot: %v", err)
		return err
	}
	return nil
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobJobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobJobs)
	jobNames := make([]string, 0, len(js.jobJobs))
	for name := range js.jobJobs {
		jobNames = append(jobNames, name)
	}
	status["jobs"] = jobNames

	return status
}
