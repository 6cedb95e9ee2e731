package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"roomly/internal/models"

	"github.com/google/uuid"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepo(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = "id, name, slug, domain, plan, settings, status, created_at, updated_at"

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, domain, plan, settings, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	settingsBytes, err := marshalSettings(tenant.Settings)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query, tenant.ID, tenant.Name, tenant.Slug, tenant.Domain, tenant.Plan, settingsBytes, tenant.Status)
	return mapError(err)
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.scanTenant(r.db.QueryRow(ctx, query, id))
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`
	return r.scanTenant(r.db.QueryRow(ctx, query, slug))
}

func (r *tenantRepo) GetByDomain(ctx context.Context, domain string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE domain = $1`
	return r.scanTenant(r.db.QueryRow(ctx, query, domain))
}

// Update persists name, domain, plan, settings and status. Slug is immutable
// and deliberately absent from the SET list.
func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, domain = $2, plan = $3, settings = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`

	settingsBytes, err := marshalSettings(tenant.Settings)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query, tenant.Name, tenant.Domain, tenant.Plan, settingsBytes, tenant.Status, tenant.ID)
	return mapError(err)
}

func (r *tenantRepo) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		var settingsBytes []byte
		if err := rows.Scan(&tenant.ID, &tenant.Name, &tenant.Slug, &tenant.Domain, &tenant.Plan, &settingsBytes, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
			return nil, err
		}
		if err := unmarshalSettings(settingsBytes, &tenant.Settings); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *tenantRepo) scanTenant(row rowScanner) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	var settingsBytes []byte

	err := row.Scan(&tenant.ID, &tenant.Name, &tenant.Slug, &tenant.Domain, &tenant.Plan, &settingsBytes, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if err := unmarshalSettings(settingsBytes, &tenant.Settings); err != nil {
		return nil, err
	}
	return tenant, nil
}

func marshalSettings(settings models.JSONB) ([]byte, error) {
	if settings == nil {
		return nil, nil
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return data, nil
}

func unmarshalSettings(data []byte, dst *models.JSONB) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return nil
}
