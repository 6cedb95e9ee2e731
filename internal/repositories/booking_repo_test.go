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

type BookingRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     BookingRepository
	tenantID uuid.UUID
	roomID   uuid.UUID
	userID   uuid.UUID
	ctx      context.Context
}

func (suite *BookingRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewBookingRepo(mock)
	suite.tenantID = uuid.New()
	suite.roomID = uuid.New()
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *BookingRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestBookingRepoTestSuite(t *testing.T) {
	suite.Run(t, new(BookingRepoTestSuite))
}

func bookingColumnsList() []string {
	return []string{"id", "tenant_id", "room_id", "user_id", "title", "start_time", "end_time", "status", "created_at", "updated_at"}
}

func (suite *BookingRepoTestSuite) TestCreate_Success() {
	start := time.Now().Add(time.Hour)
	booking := &models.Booking{
		ID:        uuid.New(),
		TenantID:  suite.tenantID,
		RoomID:    suite.roomID,
		UserID:    suite.userID,
		Title:     "Standup",
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    models.BookingStatusConfirmed,
	}

	suite.mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(booking.ID, booking.TenantID, booking.RoomID, booking.UserID, booking.Title, booking.StartTime, booking.EndTime, booking.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, booking)
	assert.NoError(suite.T(), err)
}

func (suite *BookingRepoTestSuite) TestGetByID_WrongTenantIsNotFound() {
	bookingID := uuid.New()

	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID, bookingID).
		WillReturnError(pgx.ErrNoRows)

	booking, err := suite.repo.GetByID(suite.ctx, suite.tenantID, bookingID)
	assert.Error(suite.T(), err)
	assert.True(suite.T(), common.IsNotFound(err))
	assert.Nil(suite.T(), booking)
}

func (suite *BookingRepoTestSuite) TestCancel_SkipsAlreadyCancelled() {
	bookingID := uuid.New()

	suite.mock.ExpectExec(`UPDATE bookings\s+SET status = \$1, updated_at = NOW\(\)\s+WHERE tenant_id = \$2 AND id = \$3 AND status != \$1`).
		WithArgs(models.BookingStatusCancelled, suite.tenantID, bookingID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Cancel(suite.ctx, suite.tenantID, bookingID)
	assert.NoError(suite.T(), err)
}

func (suite *BookingRepoTestSuite) TestList_WithRoomFilter() {
	now := time.Now()
	rows := pgxmock.NewRows(bookingColumnsList()).
		AddRow(uuid.New(), suite.tenantID, suite.roomID, suite.userID, "Standup", now, now.Add(time.Hour), models.BookingStatusConfirmed, now, now)

	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE tenant_id = \$1 AND room_id = \$2 ORDER BY start_time DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(suite.tenantID, suite.roomID, 50, 0).
		WillReturnRows(rows)

	bookings, err := suite.repo.List(suite.ctx, suite.tenantID, &suite.roomID, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), bookings, 1)
	assert.Equal(suite.T(), suite.roomID, bookings[0].RoomID)
}

func (suite *BookingRepoTestSuite) TestHasOverlap_IntersectingInterval() {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	suite.mock.ExpectQuery(`SELECT EXISTS \(\s+SELECT 1 FROM bookings\s+WHERE tenant_id = \$1 AND room_id = \$2 AND status = \$3\s+AND start_time < \$4 AND end_time > \$5\s+\)`).
		WithArgs(suite.tenantID, suite.roomID, models.BookingStatusConfirmed, end, start).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	overlap, err := suite.repo.HasOverlap(suite.ctx, suite.tenantID, suite.roomID, start, end)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), overlap)
}

func (suite *BookingRepoTestSuite) TestHasOverlap_BackToBackIsFree() {
	// [10:00, 11:00) then [11:00, 12:00): the query's strict inequalities
	// treat touching intervals as non-overlapping; the store returns false.
	start := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.tenantID, suite.roomID, models.BookingStatusConfirmed, end, start).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	overlap, err := suite.repo.HasOverlap(suite.ctx, suite.tenantID, suite.roomID, start, end)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), overlap)
}
