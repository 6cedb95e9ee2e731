package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roomly/internal/models"

	"github.com/google/uuid"
)

type AuditLogsRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error

	// List returns matching entries newest first plus the total count for
	// the same filters (for pagination).
	List(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters, limit, offset int) ([]*models.AuditLog, int, error)

	// DeleteOlderThan bulk-deletes entries created before the cutoff and
	// returns the number of rows removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Heuristic counters over a time window, used by suspicious-activity
	// detection.
	CountByAction(ctx context.Context, tenantID uuid.UUID, action string, since time.Time) (int, error)
	CountByActionPrefix(ctx context.Context, tenantID uuid.UUID, prefix string, since time.Time) (int, error)
	CountOutsideHours(ctx context.Context, tenantID uuid.UUID, since time.Time, startHour, endHour int) (int, error)
}

type auditLogsRepo struct {
	db Database
}

func NewAuditLogsRepo(db Database) AuditLogsRepository {
	return &auditLogsRepo{db: db}
}

func (r *auditLogsRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO audit_logs (id, tenant_id, user_id, action, entity_type, entity_id, metadata, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var metadataBytes []byte
	if entry.Metadata != nil {
		var err error
		metadataBytes, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.TenantID,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		metadataBytes,
		entry.IPAddress,
		entry.UserAgent,
		entry.CreatedAt,
	)
	return err
}

func (r *auditLogsRepo) List(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters, limit, offset int) ([]*models.AuditLog, int, error) {
	if filters == nil {
		filters = &models.AuditLogFilters{}
	}

	where := " WHERE tenant_id = $1"
	args := []any{tenantID}
	argIdx := 1

	if filters.UserID != nil {
		argIdx++
		where += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filters.UserID)
	}
	if filters.Action != nil {
		argIdx++
		where += fmt.Sprintf(" AND action ILIKE $%d", argIdx)
		args = append(args, "%"+*filters.Action+"%")
	}
	if filters.EntityType != nil {
		argIdx++
		where += fmt.Sprintf(" AND entity_type = $%d", argIdx)
		args = append(args, *filters.EntityType)
	}
	if filters.StartDate != nil {
		argIdx++
		where += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *filters.StartDate)
	}
	if filters.EndDate != nil {
		argIdx++
		where += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *filters.EndDate)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM audit_logs` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, tenant_id, user_id, action, entity_type, entity_id, metadata, ip_address, user_agent, created_at
		FROM audit_logs` + where + " ORDER BY created_at DESC"

	argIdx++
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++
	query += fmt.Sprintf(" OFFSET $%d", argIdx)
	args = append(args, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		var metadataBytes []byte

		err := rows.Scan(
			&entry.ID,
			&entry.TenantID,
			&entry.UserID,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&metadataBytes,
			&entry.IPAddress,
			&entry.UserAgent,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}

		if len(metadataBytes) > 0 {
			if err := json.Unmarshal(metadataBytes, &entry.Metadata); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}

func (r *auditLogsRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM audit_logs WHERE created_at < $1`
	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *auditLogsRepo) CountByAction(ctx context.Context, tenantID uuid.UUID, action string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM audit_logs WHERE tenant_id = $1 AND action = $2 AND created_at >= $3`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, action, since).Scan(&count)
	return count, err
}

func (r *auditLogsRepo) CountByActionPrefix(ctx context.Context, tenantID uuid.UUID, prefix string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM audit_logs WHERE tenant_id = $1 AND action LIKE $2 AND created_at >= $3`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, prefix+"%", since).Scan(&count)
	return count, err
}

func (r *auditLogsRepo) CountOutsideHours(ctx context.Context, tenantID uuid.UUID, since time.Time, startHour, endHour int) (int, error) {
	query := `
		SELECT COUNT(*) FROM audit_logs
		WHERE tenant_id = $1 AND created_at >= $2
		AND (EXTRACT(HOUR FROM created_at) < $3 OR EXTRACT(HOUR FROM created_at) >= $4)
	`
	var count int
	err := r.db.QueryRow(ctx, query, tenantID, since, startHour, endHour).Scan(&count)
	return count, err
}
