package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentflow/internal/models"
)

func setupScheduleRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ScheduleRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewScheduleRepository(db)
}

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "lease_id", "rent_amount_cents", "due_day", "start_date", "end_date",
		"is_active", "created_at", "updated_at", "organization_id",
	})
}

func TestScheduleRepository_List(t *testing.T) {
	db, mock, repo := setupScheduleRepo(t)
	defer db.Close()

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM payment_schedules WHERE organization_id = \$1 AND lease_id = \$2`).
		WithArgs("org_1", "lease_1").
		WillReturnRows(scheduleRows().
			AddRow("ps_1", "lease_1", 90000, 1, start, nil, true, now, now, "org_1").
			AddRow("ps_2", "lease_1", 45000, 15, nil, nil, true, now, now, "org_1"))

	schedules, err := repo.List("org_1", "lease_1")

	require.NoError(t, err)
	assert.Len(t, schedules, 2)
	assert.Equal(t, "ps_1", schedules[0].ID)
	require.NotNil(t, schedules[0].StartDate)
	assert.Equal(t, start, *schedules[0].StartDate)
	assert.Nil(t, schedules[1].StartDate)
	assert.Nil(t, schedules[1].EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_List_NoLeaseFilter(t *testing.T) {
	db, mock, repo := setupScheduleRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM payment_schedules WHERE organization_id = \$1 ORDER BY`).
		WithArgs("org_1").
		WillReturnRows(scheduleRows())

	schedules, err := repo.List("org_1", "")

	require.NoError(t, err)
	assert.Empty(t, schedules)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_GetByID_NotFound(t *testing.T) {
	db, mock, repo := setupScheduleRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM payment_schedules`).
		WithArgs("ps_missing", "org_1").
		WillReturnError(sql.ErrNoRows)

	s, err := repo.GetByID("ps_missing", "org_1")

	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Create(t *testing.T) {
	db, mock, repo := setupScheduleRepo(t)
	defer db.Close()

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	s := &models.PaymentSchedule{
		ID:              "ps_1",
		LeaseID:         "lease_1",
		RentAmountCents: 90000,
		DueDay:          1,
		StartDate:       &now,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
		OrganizationID:  "org_1",
	}

	mock.ExpectExec(`INSERT INTO payment_schedules`).
		WithArgs("ps_1", "lease_1", int64(90000), 1, sqlmock.AnyArg(), nil, true, now, now, "org_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(s)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_ReplaceWeekly_SingleTransaction(t *testing.T) {
	db, mock, repo := setupScheduleRepo(t)
	defer db.Close()

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]*models.PaymentSchedule, 0, 4)
	for i, day := range []int{1, 8, 15, 22} {
		sd := now
		rows = append(rows, &models.PaymentSchedule{
			ID:              "ps_" + string(rune('a'+i)),
			LeaseID:         "lease_1",
			RentAmountCents: 30000,
			DueDay:          day,
			StartDate:       &sd,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
			OrganizationID:  "org_1",
		})
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM payment_schedules`).
		WithArgs("lease_1", "org_1", 1, 8, 15, 22).
		WillReturnResult(sqlmock.NewResult(0, 4))
	for range rows {
		mock.ExpectExec(`INSERT INTO payment_schedules`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := repo.ReplaceWeekly("lease_1", "org_1", []int{1, 8, 15, 22}, rows)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_ReplaceWeekly_RollsBackOnInsertFailure(t *testing.T) {
	db, mock, repo := setupScheduleRepo(t)
	defer db.Close()

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	row := &models.PaymentSchedule{
		ID: "ps_a", LeaseID: "lease_1", RentAmountCents: 30000, DueDay: 1,
		CreatedAt: now, UpdatedAt: now, OrganizationID: "org_1",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM payment_schedules`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO payment_schedules`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.ReplaceWeekly("lease_1", "org_1", []int{1, 8, 15, 22}, []*models.PaymentSchedule{row})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
