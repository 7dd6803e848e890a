package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"rentflow/internal/models"
)

type ScheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = `id, lease_id, rent_amount_cents, due_day, start_date, end_date,
	is_active, created_at, updated_at, organization_id`

func scanSchedule(row interface{ Scan(...any) error }) (*models.PaymentSchedule, error) {
	s := &models.PaymentSchedule{}
	var start, end sql.NullTime
	err := row.Scan(
		&s.ID,
		&s.LeaseID,
		&s.RentAmountCents,
		&s.DueDay,
		&start,
		&end,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.OrganizationID,
	)
	if err != nil {
		return nil, err
	}
	if start.Valid {
		s.StartDate = &start.Time
	}
	if end.Valid {
		s.EndDate = &end.Time
	}
	return s, nil
}

// List returns all schedule rows for the organization, newest start date
// first. leaseID narrows to one lease when non-empty. De-duplication is
// the service's concern.
func (r *ScheduleRepository) List(organizationID, leaseID string) ([]*models.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM payment_schedules
		WHERE organization_id = $1`
	args := []any{organizationID}
	if leaseID != "" {
		query += ` AND lease_id = $2`
		args = append(args, leaseID)
	}
	query += ` ORDER BY start_date DESC NULLS LAST`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payment schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*models.PaymentSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *ScheduleRepository) GetByID(id, organizationID string) (*models.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM payment_schedules
		WHERE id = $1 AND organization_id = $2`
	s, err := scanSchedule(r.db.QueryRow(query, id, organizationID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get payment schedule by id: %w", err)
	}
	return s, nil
}

func (r *ScheduleRepository) Create(s *models.PaymentSchedule) error {
	query := `
		INSERT INTO payment_schedules
			(id, lease_id, rent_amount_cents, due_day, start_date, end_date,
			 is_active, created_at, updated_at, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(query,
		s.ID,
		s.LeaseID,
		s.RentAmountCents,
		s.DueDay,
		s.StartDate,
		s.EndDate,
		s.IsActive,
		s.CreatedAt,
		s.UpdatedAt,
		s.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("create payment schedule: %w", err)
	}
	return nil
}

// ReplaceWeekly deletes the lease's rows at the given due days and inserts
// the replacements in a single transaction, so a concurrent call never
// observes a half-written plan. Rows at other due days are untouched.
func (r *ScheduleRepository) ReplaceWeekly(leaseID, organizationID string, dueDays []int, rows []*models.PaymentSchedule) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin weekly plan tx: %w", err)
	}
	defer tx.Rollback()

	days := make([]any, 0, len(dueDays)+2)
	days = append(days, leaseID, organizationID)
	placeholders := ""
	for i, d := range dueDays {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += fmt.Sprintf("$%d", i+3)
		days = append(days, d)
	}
	delQuery := `DELETE FROM payment_schedules
		WHERE lease_id = $1 AND organization_id = $2 AND due_day IN (` + placeholders + `)`
	if _, err := tx.Exec(delQuery, days...); err != nil {
		return fmt.Errorf("delete weekly rows: %w", err)
	}

	insQuery := `
		INSERT INTO payment_schedules
			(id, lease_id, rent_amount_cents, due_day, start_date, end_date,
			 is_active, created_at, updated_at, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, s := range rows {
		if _, err := tx.Exec(insQuery,
			s.ID, s.LeaseID, s.RentAmountCents, s.DueDay, s.StartDate, s.EndDate,
			s.IsActive, s.CreatedAt, s.UpdatedAt, s.OrganizationID,
		); err != nil {
			return fmt.Errorf("insert weekly row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit weekly plan tx: %w", err)
	}
	return nil
}

// UpdateTerms rewrites due day and start date, bumping updated_at.
func (r *ScheduleRepository) UpdateTerms(id, organizationID string, dueDay int, startDate *time.Time, now time.Time) error {
	query := `UPDATE payment_schedules
		SET due_day = $1, start_date = $2, updated_at = $3
		WHERE id = $4 AND organization_id = $5`
	_, err := r.db.Exec(query, dueDay, startDate, now, id, organizationID)
	if err != nil {
		return fmt.Errorf("update schedule terms: %w", err)
	}
	return nil
}
