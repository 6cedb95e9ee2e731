package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/repositories"

	"github.com/google/uuid"
)

// Normal-hours window for the after-hours heuristic, local server time.
const (
	defaultNormalHoursStart = 6
	defaultNormalHoursEnd   = 22
)

type AuditService interface {
	// Record appends an audit entry. It is fire-and-forget: failures are
	// logged locally and never surfaced, so the triggering action's
	// success is independent of the audit trail.
	Record(ctx context.Context, entry *models.AuditLog)

	// Query returns filtered entries newest first plus the total count.
	Query(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters, limit, offset int) ([]*models.AuditLog, int, error)

	// Cleanup bulk-deletes entries older than the given number of days and
	// returns the deleted count. Runs on a schedule, not per-request.
	Cleanup(ctx context.Context, olderThanDays int) (int64, error)

	// DetectSuspicious scans the last 24 hours for coarse heuristics. It
	// produces counts only and takes no automated action.
	DetectSuspicious(ctx context.Context, tenantID uuid.UUID) (*models.SuspiciousActivity, error)
}

type auditService struct {
	auditRepo        repositories.AuditLogsRepository
	normalHoursStart int
	normalHoursEnd   int
}

func NewAuditService(auditRepo repositories.AuditLogsRepository) AuditService {
	return &auditService{
		auditRepo:        auditRepo,
		normalHoursStart: defaultNormalHoursStart,
		normalHoursEnd:   defaultNormalHoursEnd,
	}
}

func (s *auditService) Record(ctx context.Context, entry *models.AuditLog) {
	if entry == nil {
		return
	}
	if entry.TenantID == uuid.Nil || entry.Action == "" {
		log.Printf("audit: dropping entry with missing tenant or action (entity=%s)", entry.EntityType)
		return
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s on %s/%s for tenant %s: %v",
			entry.Action, entry.EntityType, entry.EntityID, entry.TenantID, err)
	}
}

func (s *auditService) Query(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters, limit, offset int) ([]*models.AuditLog, int, error) {
	if filters != nil && filters.StartDate != nil && filters.EndDate != nil {
		if filters.EndDate.Before(*filters.StartDate) {
			return nil, 0, fmt.Errorf("start_date cannot be after end_date")
		}
	}
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return s.auditRepo.List(ctx, tenantID, filters, limit, offset)
}

func (s *auditService) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays <= 0 {
		return 0, fmt.Errorf("retention days must be positive, got %d", olderThanDays)
	}

	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	deleted, err := s.auditRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audit logs older than %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return deleted, nil
}

func (s *auditService) DetectSuspicious(ctx context.Context, tenantID uuid.UUID) (*models.SuspiciousActivity, error) {
	now := time.Now()
	since := now.Add(-24 * time.Hour)

	failedLogins, err := s.auditRepo.CountByAction(ctx, tenantID, models.ActionLoginFailed, since)
	if err != nil {
		return nil, err
	}

	afterHours, err := s.auditRepo.CountOutsideHours(ctx, tenantID, since, s.normalHoursStart, s.normalHoursEnd)
	if err != nil {
		return nil, err
	}

	bulk, err := s.auditRepo.CountByActionPrefix(ctx, tenantID, "BULK_", since)
	if err != nil {
		return nil, err
	}

	denied, err := s.auditRepo.CountByAction(ctx, tenantID, models.ActionPermissionDenied, since)
	if err != nil {
		return nil, err
	}

	return &models.SuspiciousActivity{
		TenantID:          tenantID,
		FailedLogins:      failedLogins,
		AfterHoursActions: afterHours,
		BulkOperations:    bulk,
		PermissionDenials: denied,
		WindowStart:       since,
		WindowEnd:         now,
	}, nil
}
