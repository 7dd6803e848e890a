package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"rentflow/internal/models"
)

type WorkOrderRepository struct {
	db *sql.DB
}

func NewWorkOrderRepository(db *sql.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

const workOrderColumns = `id, property_id, lease_id, vendor_id, title, description,
	priority, status, completed_at, created_at, updated_at, organization_id`

func scanWorkOrder(row interface{ Scan(...any) error }) (*models.WorkOrder, error) {
	wo := &models.WorkOrder{}
	var leaseID, vendorID sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(
		&wo.ID,
		&wo.PropertyID,
		&leaseID,
		&vendorID,
		&wo.Title,
		&wo.Description,
		&wo.Priority,
		&wo.Status,
		&completedAt,
		&wo.CreatedAt,
		&wo.UpdatedAt,
		&wo.OrganizationID,
	)
	if err != nil {
		return nil, err
	}
	if leaseID.Valid {
		wo.LeaseID = &leaseID.String
	}
	if vendorID.Valid {
		wo.VendorID = &vendorID.String
	}
	if completedAt.Valid {
		wo.CompletedAt = &completedAt.Time
	}
	return wo, nil
}

func (r *WorkOrderRepository) Create(wo *models.WorkOrder) error {
	query := `
		INSERT INTO work_orders
			(id, property_id, lease_id, vendor_id, title, description,
			 priority, status, completed_at, created_at, updated_at, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(query,
		wo.ID, wo.PropertyID, wo.LeaseID, wo.VendorID, wo.Title, wo.Description,
		wo.Priority, wo.Status, wo.CompletedAt, wo.CreatedAt, wo.UpdatedAt, wo.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("create work order: %w", err)
	}
	return nil
}

func (r *WorkOrderRepository) GetByID(id, organizationID string) (*models.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1 AND organization_id = $2`
	wo, err := scanWorkOrder(r.db.QueryRow(query, id, organizationID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get work order by id: %w", err)
	}
	return wo, nil
}

func (r *WorkOrderRepository) List(organizationID, propertyID, status string, limit, offset int) ([]*models.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE organization_id = $1`
	args := []any{organizationID}
	i := 2
	if propertyID != "" {
		query += fmt.Sprintf(" AND property_id = $%d", i)
		args = append(args, propertyID)
		i++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, status)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		orders = append(orders, wo)
	}
	return orders, rows.Err()
}

func (r *WorkOrderRepository) UpdateStatus(id, organizationID, status string, completedAt *time.Time, now time.Time) error {
	res, err := r.db.Exec(`UPDATE work_orders
		SET status = $1, completed_at = $2, updated_at = $3
		WHERE id = $4 AND organization_id = $5`,
		status, completedAt, now, id, organizationID)
	if err != nil {
		return fmt.Errorf("update work order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update work order status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *WorkOrderRepository) AssignVendor(id, organizationID, vendorID string, now time.Time) error {
	res, err := r.db.Exec(`UPDATE work_orders
		SET vendor_id = $1, updated_at = $2
		WHERE id = $3 AND organization_id = $4`,
		vendorID, now, id, organizationID)
	if err != nil {
		return fmt.Errorf("assign vendor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign vendor: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
