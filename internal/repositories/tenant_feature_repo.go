package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"roomly/internal/models"

	"github.com/google/uuid"
)

type TenantFeatureRepository interface {
	// Upsert creates the association or, when the (tenant, feature) pair
	// already exists, updates enabled and settings in place.
	Upsert(ctx context.Context, tf *models.TenantFeature) error
	GetByTenantAndFeature(ctx context.Context, tenantID uuid.UUID, featureName string) (*models.TenantFeature, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.TenantFeature, error)
	// SetEnabled toggles the flag without touching settings. A missing
	// association is a no-op, which keeps disable idempotent.
	SetEnabled(ctx context.Context, tenantID, featureID uuid.UUID, enabled bool) error
}

type tenantFeatureRepo struct {
	db Database
}

func NewTenantFeatureRepo(db Database) TenantFeatureRepository {
	return &tenantFeatureRepo{db: db}
}

func (r *tenantFeatureRepo) Upsert(ctx context.Context, tf *models.TenantFeature) error {
	query := `
		INSERT INTO tenant_features (id, tenant_id, feature_id, enabled, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (tenant_id, feature_id)
		DO UPDATE SET enabled = EXCLUDED.enabled, settings = EXCLUDED.settings, updated_at = NOW()
	`

	var settingsBytes []byte
	if tf.Settings != nil {
		var err error
		settingsBytes, err = json.Marshal(tf.Settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
	}

	_, err := r.db.Exec(ctx, query, tf.ID, tf.TenantID, tf.FeatureID, tf.Enabled, settingsBytes)
	return mapError(err)
}

func (r *tenantFeatureRepo) GetByTenantAndFeature(ctx context.Context, tenantID uuid.UUID, featureName string) (*models.TenantFeature, error) {
	query := `
		SELECT tf.id, tf.tenant_id, tf.feature_id, f.name, tf.enabled, tf.settings, tf.created_at, tf.updated_at
		FROM tenant_features tf
		JOIN features f ON f.id = tf.feature_id
		WHERE tf.tenant_id = $1 AND f.name = $2
	`

	tf := &models.TenantFeature{}
	var settingsBytes []byte
	err := r.db.QueryRow(ctx, query, tenantID, featureName).Scan(
		&tf.ID, &tf.TenantID, &tf.FeatureID, &tf.FeatureName, &tf.Enabled, &settingsBytes, &tf.CreatedAt, &tf.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if err := unmarshalSettings(settingsBytes, &tf.Settings); err != nil {
		return nil, err
	}
	return tf, nil
}

func (r *tenantFeatureRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.TenantFeature, error) {
	query := `
		SELECT tf.id, tf.tenant_id, tf.feature_id, f.name, tf.enabled, tf.settings, tf.created_at, tf.updated_at
		FROM tenant_features tf
		JOIN features f ON f.id = tf.feature_id
		WHERE tf.tenant_id = $1
		ORDER BY f.name
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var associations []*models.TenantFeature
	for rows.Next() {
		tf := &models.TenantFeature{}
		var settingsBytes []byte
		if err := rows.Scan(&tf.ID, &tf.TenantID, &tf.FeatureID, &tf.FeatureName, &tf.Enabled, &settingsBytes, &tf.CreatedAt, &tf.UpdatedAt); err != nil {
			return nil, err
		}
		if err := unmarshalSettings(settingsBytes, &tf.Settings); err != nil {
			return nil, err
		}
		associations = append(associations, tf)
	}
	return associations, rows.Err()
}

func (r *tenantFeatureRepo) SetEnabled(ctx context.Context, tenantID, featureID uuid.UUID, enabled bool) error {
	query := `
		UPDATE tenant_features
		SET enabled = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND feature_id = $3
	`
	_, err := r.db.Exec(ctx, query, enabled, tenantID, featureID)
	return mapError(err)
}
