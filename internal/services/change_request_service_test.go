package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rentflow/internal/apperr"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

func setupChangeRequestService(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ChangeRequestService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zap.NewNop()
	svc := NewChangeRequestService(
		repositories.NewChangeRequestRepository(db),
		repositories.NewScheduleRepository(db),
		repositories.NewTenantRepository(db),
		nil,
		NewDispatcher(logger),
		logger,
	)
	return db, mock, svc
}

func TestCanTransition(t *testing.T) {
	assert.True(t, canTransition(models.ChangeRequestPending, models.ChangeRequestApproved))
	assert.True(t, canTransition(models.ChangeRequestPending, models.ChangeRequestDenied))

	// Decided requests are terminal.
	assert.False(t, canTransition(models.ChangeRequestApproved, models.ChangeRequestDenied))
	assert.False(t, canTransition(models.ChangeRequestApproved, models.ChangeRequestPending))
	assert.False(t, canTransition(models.ChangeRequestDenied, models.ChangeRequestApproved))
	assert.False(t, canTransition("bogus", models.ChangeRequestApproved))
}

func TestDecide_RejectsUnknownAction(t *testing.T) {
	db, mock, svc := setupChangeRequestService(t)
	defer db.Close()

	_, err := svc.Decide("scr_1", "org_1", "escalate", "")

	assert.True(t, apperr.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func changeRequestRow(id, status string, dueDay any) *sqlmock.Rows {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "schedule_id", "tenant_id", "requested_due_day", "requested_start_date",
		"reason", "status", "manager_note", "effective_date", "created_at", "updated_at", "organization_id",
	}).AddRow(id, "ps_1", nil, dueDay, nil, "moved payday", status, "", nil, now, now, "org_1")
}

func TestDecide_DenyMarksRequestWithoutTouchingSchedule(t *testing.T) {
	db, mock, svc := setupChangeRequestService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM schedule_change_requests`).
		WithArgs("scr_1", "org_1").
		WillReturnRows(changeRequestRow("scr_1", models.ChangeRequestPending, 10))

	mock.ExpectExec(`UPDATE schedule_change_requests`).
		WithArgs(models.ChangeRequestDenied, "not this month", sqlmock.AnyArg(), "scr_1", "org_1", models.ChangeRequestPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	cr, err := svc.Decide("scr_1", "org_1", ActionDeny, "not this month")

	require.NoError(t, err)
	assert.Equal(t, models.ChangeRequestDenied, cr.Status)
	assert.Equal(t, "not this month", cr.ManagerNote)
	assert.Nil(t, cr.EffectiveDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecide_DenyLosesRaceToAnotherDecision(t *testing.T) {
	db, mock, svc := setupChangeRequestService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM schedule_change_requests`).
		WithArgs("scr_1", "org_1").
		WillReturnRows(changeRequestRow("scr_1", models.ChangeRequestPending, 10))

	mock.ExpectExec(`UPDATE schedule_change_requests`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.Decide("scr_1", "org_1", ActionDeny, "")

	assert.True(t, apperr.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecide_ApproveRewritesScheduleTermsInOneTx(t *testing.T) {
	db, mock, svc := setupChangeRequestService(t)
	defer db.Close()

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM schedule_change_requests`).
		WithArgs("scr_1", "org_1").
		WillReturnRows(changeRequestRow("scr_1", models.ChangeRequestPending, 15))

	mock.ExpectQuery(`SELECT .+ FROM payment_schedules`).
		WithArgs("ps_1", "org_1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "lease_id", "rent_amount_cents", "due_day", "start_date", "end_date",
			"is_active", "created_at", "updated_at", "organization_id",
		}).AddRow("ps_1", "lease_1", 90000, 1, start, nil, true, now, now, "org_1"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE schedule_change_requests`).
		WithArgs(models.ChangeRequestApproved, "ok", sqlmock.AnyArg(), "scr_1", "org_1", models.ChangeRequestPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Requested start date was absent, so the schedule keeps its own.
	mock.ExpectExec(`UPDATE payment_schedules`).
		WithArgs(15, sqlmock.AnyArg(), sqlmock.AnyArg(), "ps_1", "org_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	cr, err := svc.Decide("scr_1", "org_1", ActionApprove, "ok")

	require.NoError(t, err)
	assert.Equal(t, models.ChangeRequestApproved, cr.Status)
	assert.NotNil(t, cr.EffectiveDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecide_ApproveAlreadyDecidedRequest(t *testing.T) {
	db, mock, svc := setupChangeRequestService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM schedule_change_requests`).
		WithArgs("scr_1", "org_1").
		WillReturnRows(changeRequestRow("scr_1", models.ChangeRequestDenied, 15))

	_, err := svc.Decide("scr_1", "org_1", ActionApprove, "")

	assert.True(t, apperr.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecide_MissingRequest(t *testing.T) {
	db, mock, svc := setupChangeRequestService(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM schedule_change_requests`).
		WithArgs("scr_missing", "org_1").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Decide("scr_missing", "org_1", ActionApprove, "")

	assert.True(t, apperr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
