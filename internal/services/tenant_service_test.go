package services

import (
	"context"
	"strings"
	"testing"

	"roomly/internal/common"
	"roomly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockTenantRepository
	mockFeatureSvc *MockFeatureService
	mockResolver   *MockTenantResolver
	mockAuditSvc   *MockAuditService
	service        TenantService
	ctx            context.Context
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockTenantRepository{}
	suite.mockFeatureSvc = &MockFeatureService{}
	suite.mockResolver = &MockTenantResolver{}
	suite.mockAuditSvc = &MockAuditService{}
	suite.service = NewTenantService(suite.mockRepo, suite.mockFeatureSvc, suite.mockResolver, suite.mockAuditSvc)
	suite.ctx = context.Background()

	suite.mockRepo.Test(suite.T())
	suite.mockFeatureSvc.Test(suite.T())
	suite.mockResolver.Test(suite.T())
	suite.mockAuditSvc.Test(suite.T())
}

func (suite *TenantServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockFeatureSvc.AssertExpectations(suite.T())
	suite.mockResolver.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func (suite *TenantServiceTestSuite) TestCreate_Success() {
	req := &CreateTenantRequest{
		Name: "Acme Corp",
		Slug: "Acme",
	}

	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Tenant")).Return(nil).Run(func(args mock.Arguments) {
		tenant := args.Get(1).(*models.Tenant)
		assert.Equal(suite.T(), "Acme Corp", tenant.Name)
		assert.Equal(suite.T(), "acme", tenant.Slug)
		assert.Equal(suite.T(), models.PlanStarter, tenant.Plan)
		assert.Equal(suite.T(), models.TenantStatusActive, tenant.Status)
		assert.NotEqual(suite.T(), uuid.Nil, tenant.ID)
	})
	suite.mockFeatureSvc.On("SeedPlanFeatures", suite.ctx, mock.AnythingOfType("uuid.UUID"), models.PlanStarter).Return(nil)
	suite.mockResolver.On("Invalidate", suite.ctx, mock.AnythingOfType("*models.Tenant")).Return()
	suite.mockAuditSvc.On("Record", suite.ctx, mock.AnythingOfType("*models.AuditLog")).Return().Run(func(args mock.Arguments) {
		entry := args.Get(1).(*models.AuditLog)
		assert.Equal(suite.T(), models.ActionCreate, entry.Action)
		assert.Equal(suite.T(), "tenant", entry.EntityType)
	})

	tenant, err := suite.service.Create(suite.ctx, req)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), tenant)
	assert.Equal(suite.T(), "acme", tenant.Slug)
}

func (suite *TenantServiceTestSuite) TestCreate_ReservedSlug() {
	for _, slug := range []string{"www", "api", "admin"} {
		tenant, err := suite.service.Create(suite.ctx, &CreateTenantRequest{Name: "Acme", Slug: slug})
		assert.Error(suite.T(), err)
		assert.ErrorIs(suite.T(), err, common.ErrValidation)
		assert.Nil(suite.T(), tenant)
	}
}

func (suite *TenantServiceTestSuite) TestCreate_InvalidSlug() {
	for _, slug := range []string{"", "ab", "-acme", "acme-", "Acme Corp!", strings.Repeat("a", 64)} {
		tenant, err := suite.service.Create(suite.ctx, &CreateTenantRequest{Name: "Acme", Slug: slug})
		assert.Error(suite.T(), err, "slug %q should be rejected", slug)
		assert.Nil(suite.T(), tenant)
	}
}

func (suite *TenantServiceTestSuite) TestCreate_UnknownPlan() {
	tenant, err := suite.service.Create(suite.ctx, &CreateTenantRequest{Name: "Acme", Slug: "acme", Plan: "platinum"})
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.Nil(suite.T(), tenant)
}

func (suite *TenantServiceTestSuite) TestCreate_UnknownSettingsCategory() {
	req := &CreateTenantRequest{
		Name:     "Acme",
		Slug:     "acme",
		Settings: models.JSONB{"branding": map[string]interface{}{"color": "#fff"}, "telemetry": true},
	}

	tenant, err := suite.service.Create(suite.ctx, req)
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.Nil(suite.T(), tenant)
}

func (suite *TenantServiceTestSuite) TestCreate_SlugConflictSurfaces() {
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Tenant")).Return(common.ErrConflict)

	tenant, err := suite.service.Create(suite.ctx, &CreateTenantRequest{Name: "Acme", Slug: "acme"})
	assert.Error(suite.T(), err)
	assert.True(suite.T(), common.IsConflict(err))
	assert.Nil(suite.T(), tenant)
}

func (suite *TenantServiceTestSuite) TestUpdate_PartialFieldsAndInvalidation() {
	existing := &models.Tenant{
		ID:     uuid.New(),
		Name:   "Acme Corp",
		Slug:   "acme",
		Plan:   models.PlanStarter,
		Status: models.TenantStatusActive,
	}
	newName := "Acme Inc"
	newPlan := models.PlanProfessional

	suite.mockRepo.On("GetByID", suite.ctx, existing.ID).Return(existing, nil)
	suite.mockRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.Tenant")).Return(nil).Run(func(args mock.Arguments) {
		tenant := args.Get(1).(*models.Tenant)
		assert.Equal(suite.T(), newName, tenant.Name)
		assert.Equal(suite.T(), newPlan, tenant.Plan)
		assert.Equal(suite.T(), "acme", tenant.Slug)
	})
	suite.mockResolver.On("Invalidate", suite.ctx, mock.AnythingOfType("*models.Tenant")).Return()
	suite.mockAuditSvc.On("Record", suite.ctx, mock.AnythingOfType("*models.AuditLog")).Return()

	tenant, err := suite.service.Update(suite.ctx, &UpdateTenantRequest{ID: existing.ID, Name: &newName, Plan: &newPlan})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), newName, tenant.Name)

	// Plan changes must not re-seed features.
	suite.mockFeatureSvc.AssertNotCalled(suite.T(), "SeedPlanFeatures", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestUpdate_InvalidStatus() {
	existing := &models.Tenant{ID: uuid.New(), Name: "Acme", Slug: "acme", Plan: models.PlanStarter, Status: models.TenantStatusActive}
	bad := "paused"

	suite.mockRepo.On("GetByID", suite.ctx, existing.ID).Return(existing, nil)

	tenant, err := suite.service.Update(suite.ctx, &UpdateTenantRequest{ID: existing.ID, Status: &bad})
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.Nil(suite.T(), tenant)
}

func (suite *TenantServiceTestSuite) TestUpdate_NotFound() {
	id := uuid.New()
	suite.mockRepo.On("GetByID", suite.ctx, id).Return(nil, common.ErrNotFound)

	tenant, err := suite.service.Update(suite.ctx, &UpdateTenantRequest{ID: id})
	assert.Error(suite.T(), err)
	assert.True(suite.T(), common.IsNotFound(err))
	assert.Nil(suite.T(), tenant)
}

func (suite *TenantServiceTestSuite) TestSuggestSlug() {
	suggestion := suite.service.SuggestSlug("acme")
	assert.True(suite.T(), strings.HasPrefix(suggestion, "acme-"))
	assert.Len(suite.T(), suggestion, len("acme-")+4)
	assert.NoError(suite.T(), common.ValidateSlug(suggestion))
}
