package repositories

import (
	"database/sql"
	"fmt"

	"rentflow/internal/models"
)

type VendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) Create(v *models.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, trade, email, phone, created_at, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query, v.ID, v.Name, v.Trade, v.Email, v.Phone, v.CreatedAt, v.OrganizationID)
	if err != nil {
		return fmt.Errorf("create vendor: %w", err)
	}
	return nil
}

func (r *VendorRepository) GetByID(id, organizationID string) (*models.Vendor, error) {
	query := `SELECT id, name, trade, email, phone, created_at, organization_id
		FROM vendors WHERE id = $1 AND organization_id = $2`
	v := &models.Vendor{}
	err := r.db.QueryRow(query, id, organizationID).Scan(
		&v.ID, &v.Name, &v.Trade, &v.Email, &v.Phone, &v.CreatedAt, &v.OrganizationID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor by id: %w", err)
	}
	return v, nil
}

func (r *VendorRepository) List(organizationID string) ([]*models.Vendor, error) {
	query := `SELECT id, name, trade, email, phone, created_at, organization_id
		FROM vendors WHERE organization_id = $1 ORDER BY name`
	rows, err := r.db.Query(query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		v := &models.Vendor{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Trade, &v.Email, &v.Phone, &v.CreatedAt, &v.OrganizationID); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}
