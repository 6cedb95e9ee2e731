package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAuditLogsRepository
	service  AuditService
	tenantID uuid.UUID
	userID   uuid.UUID
	ctx      context.Context
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockAuditLogsRepository{}
	suite.service = NewAuditService(suite.mockRepo)
	suite.tenantID = uuid.New()
	suite.userID = uuid.New()
	suite.ctx = context.Background()

	suite.mockRepo.Test(suite.T())
}

func (suite *AuditServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (suite *AuditServiceTestSuite) TestRecord_Success() {
	entry := &models.AuditLog{
		TenantID:   suite.tenantID,
		UserID:     &suite.userID,
		Action:     models.ActionCreate,
		EntityType: "room",
		EntityID:   uuid.New().String(),
	}

	suite.mockRepo.On("Create", suite.ctx, entry).Return(nil)

	suite.service.Record(suite.ctx, entry)
}

func (suite *AuditServiceTestSuite) TestRecord_SwallowsRepositoryError() {
	entry := &models.AuditLog{
		TenantID:   suite.tenantID,
		Action:     models.ActionDelete,
		EntityType: "booking",
	}

	suite.mockRepo.On("Create", suite.ctx, entry).Return(errors.New("disk full"))

	// Must not panic or surface the failure.
	suite.service.Record(suite.ctx, entry)
}

func (suite *AuditServiceTestSuite) TestRecord_DropsEntryWithoutTenant() {
	suite.service.Record(suite.ctx, &models.AuditLog{Action: models.ActionCreate})
	suite.service.Record(suite.ctx, &models.AuditLog{TenantID: suite.tenantID})
	suite.service.Record(suite.ctx, nil)

	suite.mockRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestQuery_InvalidDateRange() {
	start := time.Now()
	end := start.AddDate(0, -1, 0)
	filters := &models.AuditLogFilters{StartDate: &start, EndDate: &end}

	logs, total, err := suite.service.Query(suite.ctx, suite.tenantID, filters, 50, 0)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), logs)
	assert.Zero(suite.T(), total)
	assert.Contains(suite.T(), err.Error(), "start_date cannot be after end_date")
}

func (suite *AuditServiceTestSuite) TestQuery_NormalizesPagination() {
	expected := []*models.AuditLog{{ID: uuid.New(), TenantID: suite.tenantID, Action: models.ActionUpdate}}

	suite.mockRepo.On("List", suite.ctx, suite.tenantID, (*models.AuditLogFilters)(nil), 50, 0).Return(expected, 1, nil)

	logs, total, err := suite.service.Query(suite.ctx, suite.tenantID, nil, -5, -10)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), logs, 1)
	assert.Equal(suite.T(), 1, total)
}

func (suite *AuditServiceTestSuite) TestQuery_ClampsOversizedLimit() {
	suite.mockRepo.On("List", suite.ctx, suite.tenantID, (*models.AuditLogFilters)(nil), 1000, 0).Return([]*models.AuditLog{}, 0, nil)

	_, _, err := suite.service.Query(suite.ctx, suite.tenantID, nil, 5000, 0)
	assert.NoError(suite.T(), err)
}

func (suite *AuditServiceTestSuite) TestCleanup_DeletesPastCutoff() {
	suite.mockRepo.On("DeleteOlderThan", suite.ctx, mock.AnythingOfType("time.Time")).Return(int64(42), nil).Run(func(args mock.Arguments) {
		cutoff := args.Get(1).(time.Time)
		expected := time.Now().AddDate(0, 0, -90)
		assert.WithinDuration(suite.T(), expected, cutoff, time.Minute)
	})

	deleted, err := suite.service.Cleanup(suite.ctx, 90)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), deleted)
}

func (suite *AuditServiceTestSuite) TestCleanup_RejectsNonPositiveRetention() {
	for _, days := range []int{0, -7} {
		deleted, err := suite.service.Cleanup(suite.ctx, days)
		assert.Error(suite.T(), err)
		assert.Zero(suite.T(), deleted)
	}

	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteOlderThan", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestDetectSuspicious_AggregatesCounters() {
	suite.mockRepo.On("CountByAction", suite.ctx, suite.tenantID, models.ActionLoginFailed, mock.AnythingOfType("time.Time")).Return(7, nil)
	suite.mockRepo.On("CountOutsideHours", suite.ctx, suite.tenantID, mock.AnythingOfType("time.Time"), 6, 22).Return(3, nil)
	suite.mockRepo.On("CountByActionPrefix", suite.ctx, suite.tenantID, "BULK_", mock.AnythingOfType("time.Time")).Return(2, nil)
	suite.mockRepo.On("CountByAction", suite.ctx, suite.tenantID, models.ActionPermissionDenied, mock.AnythingOfType("time.Time")).Return(5, nil)

	report, err := suite.service.DetectSuspicious(suite.ctx, suite.tenantID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, report.FailedLogins)
	assert.Equal(suite.T(), 3, report.AfterHoursActions)
	assert.Equal(suite.T(), 2, report.BulkOperations)
	assert.Equal(suite.T(), 5, report.PermissionDenials)
	assert.WithinDuration(suite.T(), report.WindowStart.Add(24*time.Hour), report.WindowEnd, time.Second)
}

func (suite *AuditServiceTestSuite) TestDetectSuspicious_PropagatesCounterError() {
	suite.mockRepo.On("CountByAction", suite.ctx, suite.tenantID, models.ActionLoginFailed, mock.AnythingOfType("time.Time")).
		Return(0, errors.New("timeout"))

	report, err := suite.service.DetectSuspicious(suite.ctx, suite.tenantID)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), report)
}
