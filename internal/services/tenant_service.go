package services

import (
	"context"
	"fmt"
	"strings"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

// Settings categories accepted on tenants. Unknown top-level keys are
// rejected at write time rather than silently carried downstream.
var allowedSettingCategories = map[string]bool{
	"branding":      true,
	"locale":        true,
	"notifications": true,
}

type TenantService interface {
	Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	Update(ctx context.Context, req *UpdateTenantRequest) (*models.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)

	// SuggestSlug proposes an alternate slug after a uniqueness conflict.
	SuggestSlug(slug string) string
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	featureSvc FeatureService
	resolver   TenantResolver
	auditSvc   AuditService
}

func NewTenantService(
	tenantRepo repositories.TenantRepository,
	featureSvc FeatureService,
	resolver TenantResolver,
	auditSvc AuditService,
) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
		featureSvc: featureSvc,
		resolver:   resolver,
		auditSvc:   auditSvc,
	}
}

type CreateTenantRequest struct {
	Name     string       `json:"name" validate:"required"`
	Slug     string       `json:"slug" validate:"required"`
	Domain   *string      `json:"domain"`
	Plan     string       `json:"plan"`
	Settings models.JSONB `json:"settings"`
	ActorID  *uuid.UUID   `json:"-"`
}

type UpdateTenantRequest struct {
	ID       uuid.UUID    `json:"-"`
	Name     *string      `json:"name"`
	Domain   *string      `json:"domain"`
	Plan     *string      `json:"plan"`
	Settings models.JSONB `json:"settings"`
	Status   *string      `json:"status"`
	ActorID  *uuid.UUID   `json:"-"`
}

func (s *tenantService) Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if err := common.ValidateSlug(slug); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if ReservedSlugs[slug] {
		return nil, fmt.Errorf("slug %q is reserved: %w", slug, common.ErrValidation)
	}

	plan := req.Plan
	if plan == "" {
		plan = models.PlanStarter
	}
	if !models.ValidPlan(plan) {
		return nil, fmt.Errorf("unknown plan %q: %w", plan, common.ErrValidation)
	}

	if err := validateSettings(req.Settings); err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		ID:       uuid.New(),
		Name:     req.Name,
		Slug:     slug,
		Domain:   normalizeDomain(req.Domain),
		Plan:     plan,
		Settings: req.Settings,
		Status:   models.TenantStatusActive,
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	// One-shot plan seeding; later plan changes never re-seed.
	if err := s.featureSvc.SeedPlanFeatures(ctx, tenant.ID, plan); err != nil {
		return nil, err
	}

	// The slug could have been looked up (and missed) before this commit.
	s.resolver.Invalidate(ctx, tenant)

	s.auditSvc.Record(ctx, &models.AuditLog{
		TenantID:   tenant.ID,
		UserID:     req.ActorID,
		Action:     models.ActionCreate,
		EntityType: "tenant",
		EntityID:   tenant.ID.String(),
		Metadata:   models.JSONB{"slug": tenant.Slug, "plan": tenant.Plan},
	})

	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, id)
}

func (s *tenantService) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	if slug == "" {
		return nil, fmt.Errorf("slug is required: %w", common.ErrValidation)
	}
	return s.tenantRepo.GetBySlug(ctx, slug)
}

func (s *tenantService) Update(ctx context.Context, req *UpdateTenantRequest) (*models.Tenant, error) {
	existing, err := s.tenantRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	changes := models.JSONB{}
	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
		}
		existing.Name = *req.Name
		changes["name"] = *req.Name
	}
	if req.Domain != nil {
		existing.Domain = normalizeDomain(req.Domain)
		changes["domain"] = common.SafeString(existing.Domain)
	}
	if req.Plan != nil {
		if !models.ValidPlan(*req.Plan) {
			return nil, fmt.Errorf("unknown plan %q: %w", *req.Plan, common.ErrValidation)
		}
		existing.Plan = *req.Plan
		changes["plan"] = *req.Plan
	}
	if req.Settings != nil {
		if err := validateSettings(req.Settings); err != nil {
			return nil, err
		}
		existing.Settings = req.Settings
		changes["settings"] = "updated"
	}
	if req.Status != nil {
		if *req.Status != models.TenantStatusActive && *req.Status != models.TenantStatusSuspended {
			return nil, fmt.Errorf("unknown status %q: %w", *req.Status, common.ErrValidation)
		}
		existing.Status = *req.Status
		changes["status"] = *req.Status
	}

	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.resolver.Invalidate(ctx, existing)

	s.auditSvc.Record(ctx, &models.AuditLog{
		TenantID:   existing.ID,
		UserID:     req.ActorID,
		Action:     models.ActionUpdate,
		EntityType: "tenant",
		EntityID:   existing.ID.String(),
		Metadata:   changes,
	})

	return existing, nil
}

func (s *tenantService) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.tenantRepo.List(ctx, limit, offset)
}

func (s *tenantService) SuggestSlug(slug string) string {
	suffix := strings.ToLower(random.String(4, random.Lowercase, random.Numeric))
	return fmt.Sprintf("%s-%s", slug, suffix)
}

func validateSettings(settings models.JSONB) error {
	for key := range settings {
		if !allowedSettingCategories[key] {
			return fmt.Errorf("unknown settings category %q: %w", key, common.ErrValidation)
		}
	}
	return nil
}

func normalizeDomain(domain *string) *string {
	if domain == nil {
		return nil
	}
	d := strings.ToLower(strings.TrimSpace(*domain))
	if d == "" {
		return nil
	}
	return &d
}
