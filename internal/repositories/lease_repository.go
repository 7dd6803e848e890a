package repositories

import (
	"database/sql"
	"fmt"

	"rentflow/internal/models"
)

type LeaseRepository struct {
	db *sql.DB
}

func NewLeaseRepository(db *sql.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

const leaseColumns = `id, property_id, tenant_id, unit_label, rent_amount_cents,
	start_date, end_date, status, created_at, organization_id`

func scanLease(row interface{ Scan(...any) error }) (*models.Lease, error) {
	l := &models.Lease{}
	var end sql.NullTime
	err := row.Scan(
		&l.ID,
		&l.PropertyID,
		&l.TenantID,
		&l.UnitLabel,
		&l.RentAmountCents,
		&l.StartDate,
		&end,
		&l.Status,
		&l.CreatedAt,
		&l.OrganizationID,
	)
	if err != nil {
		return nil, err
	}
	if end.Valid {
		l.EndDate = &end.Time
	}
	return l, nil
}

func (r *LeaseRepository) Create(l *models.Lease) error {
	query := `
		INSERT INTO leases
			(id, property_id, tenant_id, unit_label, rent_amount_cents,
			 start_date, end_date, status, created_at, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(query,
		l.ID, l.PropertyID, l.TenantID, l.UnitLabel, l.RentAmountCents,
		l.StartDate, l.EndDate, l.Status, l.CreatedAt, l.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("create lease: %w", err)
	}
	return nil
}

func (r *LeaseRepository) GetByID(id, organizationID string) (*models.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE id = $1 AND organization_id = $2`
	l, err := scanLease(r.db.QueryRow(query, id, organizationID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lease by id: %w", err)
	}
	return l, nil
}

// List returns the organization's leases, optionally narrowed to a property.
func (r *LeaseRepository) List(organizationID, propertyID string, limit, offset int) ([]*models.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE organization_id = $1`
	args := []any{organizationID}
	i := 2
	if propertyID != "" {
		query += fmt.Sprintf(" AND property_id = $%d", i)
		args = append(args, propertyID)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	defer rows.Close()

	var leases []*models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lease: %w", err)
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

func (r *LeaseRepository) UpdateStatus(id, organizationID, status string) error {
	res, err := r.db.Exec(`UPDATE leases SET status = $1 WHERE id = $2 AND organization_id = $3`,
		status, id, organizationID)
	if err != nil {
		return fmt.Errorf("update lease status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lease status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
