package repositories

import (
	"context"
	"testing"
	"time"

	"roomly/internal/common"
	"roomly/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TenantFeatureRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      TenantFeatureRepository
	tenantID  uuid.UUID
	featureID uuid.UUID
	ctx       context.Context
}

func (suite *TenantFeatureRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewTenantFeatureRepo(mock)
	suite.tenantID = uuid.New()
	suite.featureID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *TenantFeatureRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestTenantFeatureRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TenantFeatureRepoTestSuite))
}

func tenantFeatureColumnsList() []string {
	return []string{"id", "tenant_id", "feature_id", "name", "enabled", "settings", "created_at", "updated_at"}
}

func (suite *TenantFeatureRepoTestSuite) TestUpsert_InsertOrUpdate() {
	tf := &models.TenantFeature{
		ID:        uuid.New(),
		TenantID:  suite.tenantID,
		FeatureID: suite.featureID,
		Enabled:   true,
		Settings:  models.JSONB{"widgets": []interface{}{"occupancy"}},
	}

	suite.mock.ExpectExec(`INSERT INTO tenant_features (.+) ON CONFLICT \(tenant_id, feature_id\)\s+DO UPDATE SET enabled = EXCLUDED.enabled, settings = EXCLUDED.settings, updated_at = NOW\(\)`).
		WithArgs(tf.ID, tf.TenantID, tf.FeatureID, tf.Enabled, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Upsert(suite.ctx, tf)
	assert.NoError(suite.T(), err)
}

func (suite *TenantFeatureRepoTestSuite) TestGetByTenantAndFeature_JoinsFeatureName() {
	now := time.Now()
	rows := pgxmock.NewRows(tenantFeatureColumnsList()).
		AddRow(uuid.New(), suite.tenantID, suite.featureID, models.FeatureAnalytics, true, []byte(`{"retention":30}`), now, now)

	suite.mock.ExpectQuery(`SELECT (.+) FROM tenant_features tf\s+JOIN features f ON f.id = tf.feature_id\s+WHERE tf.tenant_id = \$1 AND f.name = \$2`).
		WithArgs(suite.tenantID, models.FeatureAnalytics).
		WillReturnRows(rows)

	tf, err := suite.repo.GetByTenantAndFeature(suite.ctx, suite.tenantID, models.FeatureAnalytics)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.FeatureAnalytics, tf.FeatureName)
	assert.True(suite.T(), tf.Enabled)
	assert.Equal(suite.T(), models.JSONB{"retention": float64(30)}, tf.Settings)
}

func (suite *TenantFeatureRepoTestSuite) TestGetByTenantAndFeature_NotFound() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM tenant_features tf`).
		WithArgs(suite.tenantID, models.FeatureMultiSite).
		WillReturnError(pgx.ErrNoRows)

	tf, err := suite.repo.GetByTenantAndFeature(suite.ctx, suite.tenantID, models.FeatureMultiSite)
	assert.Error(suite.T(), err)
	assert.True(suite.T(), common.IsNotFound(err))
	assert.Nil(suite.T(), tf)
}

func (suite *TenantFeatureRepoTestSuite) TestListByTenant_OrderedByName() {
	now := time.Now()
	rows := pgxmock.NewRows(tenantFeatureColumnsList()).
		AddRow(uuid.New(), suite.tenantID, uuid.New(), models.FeatureAnalytics, true, []byte(nil), now, now).
		AddRow(uuid.New(), suite.tenantID, uuid.New(), models.FeatureRoomBooking, true, []byte(nil), now, now)

	suite.mock.ExpectQuery(`SELECT (.+) FROM tenant_features tf\s+JOIN features f ON f.id = tf.feature_id\s+WHERE tf.tenant_id = \$1\s+ORDER BY f.name`).
		WithArgs(suite.tenantID).
		WillReturnRows(rows)

	associations, err := suite.repo.ListByTenant(suite.ctx, suite.tenantID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), associations, 2)
	assert.Equal(suite.T(), models.FeatureAnalytics, associations[0].FeatureName)
}

func (suite *TenantFeatureRepoTestSuite) TestSetEnabled_MissingRowIsNoop() {
	suite.mock.ExpectExec(`UPDATE tenant_features\s+SET enabled = \$1, updated_at = NOW\(\)\s+WHERE tenant_id = \$2 AND feature_id = \$3`).
		WithArgs(false, suite.tenantID, suite.featureID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.SetEnabled(suite.ctx, suite.tenantID, suite.featureID, false)
	assert.NoError(suite.T(), err)
}
