package services

import (
	"context"
	"time"

	"roomly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByDomain(ctx context.Context, domain string) (*models.Tenant, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

type MockFeatureRepository struct {
	mock.Mock
}

func (m *MockFeatureRepository) Create(ctx context.Context, feature *models.Feature) error {
	args := m.Called(ctx, feature)
	return args.Error(0)
}

func (m *MockFeatureRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Feature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feature), args.Error(1)
}

func (m *MockFeatureRepository) GetByName(ctx context.Context, name string) (*models.Feature, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feature), args.Error(1)
}

func (m *MockFeatureRepository) List(ctx context.Context) ([]*models.Feature, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Feature), args.Error(1)
}

type MockTenantFeatureRepository struct {
	mock.Mock
}

func (m *MockTenantFeatureRepository) Upsert(ctx context.Context, tf *models.TenantFeature) error {
	args := m.Called(ctx, tf)
	return args.Error(0)
}

func (m *MockTenantFeatureRepository) GetByTenantAndFeature(ctx context.Context, tenantID uuid.UUID, featureName string) (*models.TenantFeature, error) {
	args := m.Called(ctx, tenantID, featureName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantFeature), args.Error(1)
}

func (m *MockTenantFeatureRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.TenantFeature, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TenantFeature), args.Error(1)
}

func (m *MockTenantFeatureRepository) SetEnabled(ctx context.Context, tenantID, featureID uuid.UUID, enabled bool) error {
	args := m.Called(ctx, tenantID, featureID, enabled)
	return args.Error(0)
}

type MockAuditLogsRepository struct {
	mock.Mock
}

func (m *MockAuditLogsRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogsRepository) List(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters, limit, offset int) ([]*models.AuditLog, int, error) {
	args := m.Called(ctx, tenantID, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.AuditLog), args.Int(1), args.Error(2)
}

func (m *MockAuditLogsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditLogsRepository) CountByAction(ctx context.Context, tenantID uuid.UUID, action string, since time.Time) (int, error) {
	args := m.Called(ctx, tenantID, action, since)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditLogsRepository) CountByActionPrefix(ctx context.Context, tenantID uuid.UUID, prefix string, since time.Time) (int, error) {
	args := m.Called(ctx, tenantID, prefix, since)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditLogsRepository) CountOutsideHours(ctx context.Context, tenantID uuid.UUID, since time.Time, startHour, endHour int) (int, error) {
	args := m.Called(ctx, tenantID, since, startHour, endHour)
	return args.Int(0), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockRoomRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Room, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context, tenantID uuid.UUID, roomID *uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	args := m.Called(ctx, tenantID, roomID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) HasOverlap(ctx context.Context, tenantID, roomID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, tenantID, roomID, start, end)
	return args.Bool(0), args.Error(1)
}

type MockTenantCache struct {
	mock.Mock
}

func (m *MockTenantCache) GetTenant(ctx context.Context, key string) (*models.TenantSnapshot, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantSnapshot), args.Error(1)
}

func (m *MockTenantCache) SetTenant(ctx context.Context, key string, snapshot *models.TenantSnapshot, ttl time.Duration) error {
	args := m.Called(ctx, key, snapshot, ttl)
	return args.Error(0)
}

func (m *MockTenantCache) DeleteTenant(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockFeatureService struct {
	mock.Mock
}

func (m *MockFeatureService) HasFeature(ctx context.Context, tenant *models.Tenant, featureName string) bool {
	args := m.Called(ctx, tenant, featureName)
	return args.Bool(0)
}

func (m *MockFeatureService) GetFeatureSettings(ctx context.Context, tenant *models.Tenant, featureName string) (models.JSONB, error) {
	args := m.Called(ctx, tenant, featureName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.JSONB), args.Error(1)
}

func (m *MockFeatureService) Enable(ctx context.Context, tenantID uuid.UUID, featureName string, settings models.JSONB) error {
	args := m.Called(ctx, tenantID, featureName, settings)
	return args.Error(0)
}

func (m *MockFeatureService) Disable(ctx context.Context, tenantID uuid.UUID, featureName string) error {
	args := m.Called(ctx, tenantID, featureName)
	return args.Error(0)
}

func (m *MockFeatureService) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.TenantFeature, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TenantFeature), args.Error(1)
}

func (m *MockFeatureService) ListDefined(ctx context.Context) ([]*models.Feature, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Feature), args.Error(1)
}

func (m *MockFeatureService) SeedPlanFeatures(ctx context.Context, tenantID uuid.UUID, plan string) error {
	args := m.Called(ctx, tenantID, plan)
	return args.Error(0)
}

func (m *MockFeatureService) SeedCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry *models.AuditLog) {
	m.Called(ctx, entry)
}

func (m *MockAuditService) Query(ctx context.Context, tenantID uuid.UUID, filters *models.AuditLogFilters, limit, offset int) ([]*models.AuditLog, int, error) {
	args := m.Called(ctx, tenantID, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.AuditLog), args.Int(1), args.Error(2)
}

func (m *MockAuditService) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditService) DetectSuspicious(ctx context.Context, tenantID uuid.UUID) (*models.SuspiciousActivity, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SuspiciousActivity), args.Error(1)
}

type MockTenantResolver struct {
	mock.Mock
}

func (m *MockTenantResolver) Resolve(ctx context.Context, host, explicitSlug string) (*models.Tenant, error) {
	args := m.Called(ctx, host, explicitSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantResolver) Invalidate(ctx context.Context, tenant *models.Tenant) {
	m.Called(ctx, tenant)
}
