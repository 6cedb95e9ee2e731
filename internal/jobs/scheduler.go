package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"roomly/internal/models"
	"roomly/internal/repositories"
	"roomly/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// JobScheduler manages background jobs
type JobScheduler struct {
	scheduler     gocron.Scheduler
	auditSvc      services.AuditService
	tenantRepo    repositories.TenantRepository
	retentionDays int
	jobs          map[string]gocron.Job
	mu            sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(auditSvc services.AuditService, tenantRepo repositories.TenantRepository, retentionDays int) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:     scheduler,
		auditSvc:      auditSvc,
		tenantRepo:    tenantRepo,
		retentionDays: retentionDays,
		jobs:          make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Audit retention job - daily
	retentionJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.cleanupAuditLogs, context.Background()),
		gocron.WithName("audit-retention"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create audit retention job: %v", err)
	} else {
		js.jobs["audit-retention"] = retentionJob
	}

	// Suspicious activity scan - every 6 hours
	scanJob, err := js.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(js.scanSuspiciousActivity, context.Background()),
		gocron.WithName("suspicious-activity-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create suspicious activity job: %v", err)
	} else {
		js.jobs["suspicious-activity-scan"] = scanJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// cleanupAuditLogs deletes audit entries past the retention window
func (js *JobScheduler) cleanupAuditLogs(ctx context.Context) error {
	log.Printf("Starting audit log cleanup (retention %d days)", js.retentionDays)

	deleted, err := js.auditSvc.Cleanup(ctx, js.retentionDays)
	if err != nil {
		log.Printf("Audit log cleanup failed: %v", err)
		return err
	}

	log.Printf("Audit log cleanup completed, deleted %d entries", deleted)
	return nil
}

// scanSuspiciousActivity runs the heuristic scan for every active tenant
func (js *JobScheduler) scanSuspiciousActivity(ctx context.Context) error {
	tenants, err := js.tenantRepo.List(ctx, 1000, 0)
	if err != nil {
		log.Printf("Failed to list tenants for suspicious activity scan: %v", err)
		return err
	}

	semaphore := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for _, tenant := range tenants {
		if tenant.Status != models.TenantStatusActive {
			continue
		}

		wg.Add(1)
		go func(tenantID uuid.UUID, name string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			report, err := js.auditSvc.DetectSuspicious(ctx, tenantID)
			if err != nil {
				log.Printf("Suspicious activity scan failed for tenant %s: %v", tenantID.String(), err)
				return
			}

			if report.FailedLogins > 0 || report.PermissionDenials > 0 || report.BulkOperations > 0 {
				log.Printf("ALERT: tenant %s: %d failed logins, %d permission denials, %d bulk operations, %d after-hours actions in last 24h",
					name, report.FailedLogins, report.PermissionDenials, report.BulkOperations, report.AfterHoursActions)
			}
		}(tenant.ID, tenant.Name)
	}

	wg.Wait()
	log.Printf("Completed suspicious activity scan for %d tenants", len(tenants))
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

	js.jobs[name] = job
	return nil
}
