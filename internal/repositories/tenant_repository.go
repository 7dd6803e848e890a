package repositories

import (
	"database/sql"
	"fmt"

	"rentflow/internal/models"
)

type TenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Create(t *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, first_name, last_name, email, phone, created_at, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query, t.ID, t.FirstName, t.LastName, t.Email, t.Phone, t.CreatedAt, t.OrganizationID)
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

func (r *TenantRepository) GetByID(id, organizationID string) (*models.Tenant, error) {
	query := `SELECT id, first_name, last_name, email, phone, created_at, organization_id
		FROM tenants WHERE id = $1 AND organization_id = $2`
	t := &models.Tenant{}
	err := r.db.QueryRow(query, id, organizationID).Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.CreatedAt, &t.OrganizationID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant by id: %w", err)
	}
	return t, nil
}

func (r *TenantRepository) List(organizationID string, limit, offset int) ([]*models.Tenant, error) {
	query := `SELECT id, first_name, last_name, email, phone, created_at, organization_id
		FROM tenants WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t := &models.Tenant{}
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.CreatedAt, &t.OrganizationID); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *TenantRepository) Update(t *models.Tenant) error {
	query := `UPDATE tenants
		SET first_name = $1, last_name = $2, email = $3, phone = $4
		WHERE id = $5 AND organization_id = $6`
	_, err := r.db.Exec(query, t.FirstName, t.LastName, t.Email, t.Phone, t.ID, t.OrganizationID)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

func (r *TenantRepository) Delete(id, organizationID string) error {
	res, err := r.db.Exec(`DELETE FROM tenants WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
