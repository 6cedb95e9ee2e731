package services

import (
	"context"
	"fmt"
	"log"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/repositories"

	"github.com/google/uuid"
)

type FeatureService interface {
	// HasFeature answers whether the feature is enabled for the tenant.
	// The tenant's loaded association list is used when present; otherwise
	// the association store is queried. Any ambiguity resolves to false.
	HasFeature(ctx context.Context, tenant *models.Tenant, featureName string) bool

	// GetFeatureSettings returns the per-tenant override settings when the
	// feature is enabled, or nil when absent or disabled.
	GetFeatureSettings(ctx context.Context, tenant *models.Tenant, featureName string) (models.JSONB, error)

	// Enable upserts the association to enabled=true. Enabling a feature
	// that is not defined globally is an error. Passing nil settings
	// preserves whatever settings an existing association already has.
	Enable(ctx context.Context, tenantID uuid.UUID, featureName string, settings models.JSONB) error

	// Disable sets enabled=false without deleting the association, so
	// settings survive a later re-enable.
	Disable(ctx context.Context, tenantID uuid.UUID, featureName string) error

	ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.TenantFeature, error)
	ListDefined(ctx context.Context) ([]*models.Feature, error)

	// SeedPlanFeatures enables the plan's default feature set. Applied
	// exactly once at tenant creation; plan changes never re-seed.
	SeedPlanFeatures(ctx context.Context, tenantID uuid.UUID, plan string) error

	// SeedCatalog registers the well-known feature definitions. Safe to
	// call on every startup; existing definitions are left untouched.
	SeedCatalog(ctx context.Context) error
}

type featureService struct {
	featureRepo       repositories.FeatureRepository
	tenantFeatureRepo repositories.TenantFeatureRepository
}

func NewFeatureService(featureRepo repositories.FeatureRepository, tenantFeatureRepo repositories.TenantFeatureRepository) FeatureService {
	return &featureService{
		featureRepo:       featureRepo,
		tenantFeatureRepo: tenantFeatureRepo,
	}
}

func (s *featureService) HasFeature(ctx context.Context, tenant *models.Tenant, featureName string) bool {
	if tenant == nil || featureName == "" {
		return false
	}

	if tenant.Features != nil {
		for _, tf := range tenant.Features {
			if tf.FeatureName == featureName {
				return tf.Enabled
			}
		}
		return false
	}

	tf, err := s.tenantFeatureRepo.GetByTenantAndFeature(ctx, tenant.ID, featureName)
	if err != nil {
		if !common.IsNotFound(err) {
			// Deny on infrastructure failure rather than failing open.
			log.Printf("feature check %q for tenant %s failed: %v", featureName, tenant.ID, err)
		}
		return false
	}
	return tf.Enabled
}

func (s *featureService) GetFeatureSettings(ctx context.Context, tenant *models.Tenant, featureName string) (models.JSONB, error) {
	if tenant == nil {
		return nil, fmt.Errorf("tenant is required")
	}

	tf, err := s.tenantFeatureRepo.GetByTenantAndFeature(ctx, tenant.ID, featureName)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if !tf.Enabled {
		return nil, nil
	}
	return tf.Settings, nil
}

func (s *featureService) Enable(ctx context.Context, tenantID uuid.UUID, featureName string, settings models.JSONB) error {
	feature, err := s.featureRepo.GetByName(ctx, featureName)
	if err != nil {
		if common.IsNotFound(err) {
			return fmt.Errorf("feature %q is not defined: %w", featureName, common.ErrNotFound)
		}
		return err
	}

	if settings == nil {
		// Keep existing settings when re-enabling.
		existing, err := s.tenantFeatureRepo.GetByTenantAndFeature(ctx, tenantID, featureName)
		if err == nil {
			settings = existing.Settings
		} else if !common.IsNotFound(err) {
			return err
		}
	}

	return s.tenantFeatureRepo.Upsert(ctx, &models.TenantFeature{
		ID:        uuid.New(),
		TenantID:  tenantID,
		FeatureID: feature.ID,
		Enabled:   true,
		Settings:  settings,
	})
}

func (s *featureService) Disable(ctx context.Context, tenantID uuid.UUID, featureName string) error {
	feature, err := s.featureRepo.GetByName(ctx, featureName)
	if err != nil {
		if common.IsNotFound(err) {
			return fmt.Errorf("feature %q is not defined: %w", featureName, common.ErrNotFound)
		}
		return err
	}

	return s.tenantFeatureRepo.SetEnabled(ctx, tenantID, feature.ID, false)
}

func (s *featureService) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.TenantFeature, error) {
	return s.tenantFeatureRepo.ListByTenant(ctx, tenantID)
}

func (s *featureService) ListDefined(ctx context.Context) ([]*models.Feature, error) {
	return s.featureRepo.List(ctx)
}

var catalogDescriptions = map[string]string{
	models.FeatureRoomBooking:     "Create and manage room bookings",
	models.FeatureAnalytics:       "Usage and occupancy analytics",
	models.FeatureMultiSite:       "Manage rooms across multiple sites",
	models.FeatureCustomBranding:  "Custom logos and colors",
	models.FeatureAPIAccess:       "Programmatic API access",
	models.FeatureAuditExport:     "Export audit logs",
	models.FeaturePrioritySupport: "Priority support channel",
}

func (s *featureService) SeedCatalog(ctx context.Context) error {
	for name, description := range catalogDescriptions {
		desc := description
		feature := &models.Feature{
			ID:          uuid.New(),
			Name:        name,
			Description: &desc,
		}
		if err := s.featureRepo.Create(ctx, feature); err != nil {
			return fmt.Errorf("failed to seed feature %q: %w", name, err)
		}
	}
	return nil
}

func (s *featureService) SeedPlanFeatures(ctx context.Context, tenantID uuid.UUID, plan string) error {
	names, ok := models.PlanFeatures[plan]
	if !ok {
		return fmt.Errorf("unknown plan %q: %w", plan, common.ErrValidation)
	}

	for _, name := range names {
		if err := s.Enable(ctx, tenantID, name, nil); err != nil {
			return fmt.Errorf("failed to seed feature %q: %w", name, err)
		}
	}
	return nil
}
