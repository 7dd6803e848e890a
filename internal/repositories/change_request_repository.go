package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"rentflow/internal/models"
)

type ChangeRequestRepository struct {
	db *sql.DB
}

func NewChangeRequestRepository(db *sql.DB) *ChangeRequestRepository {
	return &ChangeRequestRepository{db: db}
}

const changeRequestColumns = `id, schedule_id, tenant_id, requested_due_day, requested_start_date,
	reason, status, manager_note, effective_date, created_at, updated_at, organization_id`

func scanChangeRequest(row interface{ Scan(...any) error }, withTenantName bool) (*models.ScheduleChangeRequest, error) {
	cr := &models.ScheduleChangeRequest{}
	var tenantID sql.NullString
	var dueDay sql.NullInt64
	var startDate, effective sql.NullTime
	var tenantName sql.NullString

	dest := []any{
		&cr.ID,
		&cr.ScheduleID,
		&tenantID,
		&dueDay,
		&startDate,
		&cr.Reason,
		&cr.Status,
		&cr.ManagerNote,
		&effective,
		&cr.CreatedAt,
		&cr.UpdatedAt,
		&cr.OrganizationID,
	}
	if withTenantName {
		dest = append(dest, &tenantName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if tenantID.Valid {
		cr.TenantID = &tenantID.String
	}
	if dueDay.Valid {
		d := int(dueDay.Int64)
		cr.RequestedDueDay = &d
	}
	if startDate.Valid {
		cr.RequestedStartDate = &startDate.Time
	}
	if effective.Valid {
		cr.EffectiveDate = &effective.Time
	}
	if tenantName.Valid {
		cr.TenantName = tenantName.String
	}
	return cr, nil
}

func (r *ChangeRequestRepository) Create(cr *models.ScheduleChangeRequest) error {
	query := `
		INSERT INTO schedule_change_requests
			(id, schedule_id, tenant_id, requested_due_day, requested_start_date,
			 reason, status, manager_note, effective_date, created_at, updated_at, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(query,
		cr.ID,
		cr.ScheduleID,
		cr.TenantID,
		cr.RequestedDueDay,
		cr.RequestedStartDate,
		cr.Reason,
		cr.Status,
		cr.ManagerNote,
		cr.EffectiveDate,
		cr.CreatedAt,
		cr.UpdatedAt,
		cr.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("create change request: %w", err)
	}
	return nil
}

func (r *ChangeRequestRepository) GetByID(id, organizationID string) (*models.ScheduleChangeRequest, error) {
	query := `SELECT ` + changeRequestColumns + `
		FROM schedule_change_requests
		WHERE id = $1 AND organization_id = $2`
	cr, err := scanChangeRequest(r.db.QueryRow(query, id, organizationID), false)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get change request by id: %w", err)
	}
	return cr, nil
}

// ListWithTenant returns requests for the organization joined with the
// tenant's name, newest first. status narrows the result when non-empty.
func (r *ChangeRequestRepository) ListWithTenant(organizationID, status string) ([]*models.ScheduleChangeRequest, error) {
	query := `
		SELECT cr.id, cr.schedule_id, cr.tenant_id, cr.requested_due_day, cr.requested_start_date,
		       cr.reason, cr.status, cr.manager_note, cr.effective_date, cr.created_at, cr.updated_at,
		       cr.organization_id,
		       NULLIF(TRIM(COALESCE(t.first_name, '') || ' ' || COALESCE(t.last_name, '')), '') AS tenant_name
		FROM schedule_change_requests cr
		LEFT JOIN tenants t ON t.id = cr.tenant_id
		WHERE cr.organization_id = $1`
	args := []any{organizationID}
	if status != "" {
		query += ` AND cr.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY cr.created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list change requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.ScheduleChangeRequest
	for rows.Next() {
		cr, err := scanChangeRequest(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan change request: %w", err)
		}
		requests = append(requests, cr)
	}
	return requests, rows.Err()
}

// Deny marks a pending request denied with the manager's note. Returns
// false when the request was not pending anymore (or does not exist).
func (r *ChangeRequestRepository) Deny(id, organizationID, managerNote string, now time.Time) (bool, error) {
	query := `UPDATE schedule_change_requests
		SET status = $1, manager_note = $2, updated_at = $3
		WHERE id = $4 AND organization_id = $5 AND status = $6`
	res, err := r.db.Exec(query, models.ChangeRequestDenied, managerNote, now, id, organizationID, models.ChangeRequestPending)
	if err != nil {
		return false, fmt.Errorf("deny change request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deny change request: %w", err)
	}
	return affected > 0, nil
}

// Approve marks the pending request approved and rewrites the referenced
// schedule's terms in one transaction, so the two rows never disagree.
// Returns false when the request was not pending anymore.
func (r *ChangeRequestRepository) Approve(id, organizationID, managerNote string, scheduleID string, dueDay int, startDate *time.Time, now time.Time) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin approve tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE schedule_change_requests
		SET status = $1, manager_note = $2, effective_date = $3, updated_at = $3
		WHERE id = $4 AND organization_id = $5 AND status = $6`,
		models.ChangeRequestApproved, managerNote, now, id, organizationID, models.ChangeRequestPending)
	if err != nil {
		return false, fmt.Errorf("approve change request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("approve change request: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`UPDATE payment_schedules
		SET due_day = $1, start_date = $2, updated_at = $3
		WHERE id = $4 AND organization_id = $5`,
		dueDay, startDate, now, scheduleID, organizationID); err != nil {
		return false, fmt.Errorf("apply approved terms: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit approve tx: %w", err)
	}
	return true, nil
}
