package repositories

import (
	"database/sql"
	"fmt"

	"rentflow/internal/models"
)

type PropertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(p *models.Property) error {
	query := `
		INSERT INTO properties (id, name, address, city, unit_count, created_at, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query, p.ID, p.Name, p.Address, p.City, p.UnitCount, p.CreatedAt, p.OrganizationID)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) GetByID(id, organizationID string) (*models.Property, error) {
	query := `SELECT id, name, address, city, unit_count, created_at, organization_id
		FROM properties WHERE id = $1 AND organization_id = $2`
	p := &models.Property{}
	err := r.db.QueryRow(query, id, organizationID).Scan(
		&p.ID, &p.Name, &p.Address, &p.City, &p.UnitCount, &p.CreatedAt, &p.OrganizationID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get property by id: %w", err)
	}
	return p, nil
}

func (r *PropertyRepository) List(organizationID string, limit, offset int) ([]*models.Property, error) {
	query := `SELECT id, name, address, city, unit_count, created_at, organization_id
		FROM properties WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p := &models.Property{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.City, &p.UnitCount, &p.CreatedAt, &p.OrganizationID); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) Update(p *models.Property) error {
	query := `UPDATE properties
		SET name = $1, address = $2, city = $3, unit_count = $4
		WHERE id = $5 AND organization_id = $6`
	_, err := r.db.Exec(query, p.Name, p.Address, p.City, p.UnitCount, p.ID, p.OrganizationID)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) Delete(id, organizationID string) error {
	res, err := r.db.Exec(`DELETE FROM properties WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
