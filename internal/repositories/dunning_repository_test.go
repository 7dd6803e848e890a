package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentflow/internal/models"
)

func TestDunningRepository_Get_NoRowMeansNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDunningRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM dunning_settings`).
		WithArgs("org_1").
		WillReturnRows(sqlmock.NewRows([]string{
			"organization_id", "first_notice_days", "second_notice_days",
			"third_notice_days", "final_notice_days", "is_active",
		}))

	s, err := repo.Get("org_1")

	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDunningRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDunningRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM dunning_settings`).
		WithArgs("org_1").
		WillReturnRows(sqlmock.NewRows([]string{
			"organization_id", "first_notice_days", "second_notice_days",
			"third_notice_days", "final_notice_days", "is_active",
		}).AddRow("org_1", 5, 10, 20, 45, true))

	s, err := repo.Get("org_1")

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 5, s.FirstNoticeDays)
	assert.Equal(t, 45, s.FinalNoticeDays)
	assert.True(t, s.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDunningRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewDunningRepository(db)

	mock.ExpectExec(`INSERT INTO dunning_settings .+ ON CONFLICT \(organization_id\) DO UPDATE`).
		WithArgs("org_1", 5, 10, 20, 45).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Upsert(&models.DunningSettings{
		OrganizationID:   "org_1",
		FirstNoticeDays:  5,
		SecondNoticeDays: 10,
		ThirdNoticeDays:  20,
		FinalNoticeDays:  45,
		IsActive:         true,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
