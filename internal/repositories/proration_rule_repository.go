package repositories

import (
	"database/sql"
	"fmt"

	"rentflow/internal/models"
)

type ProrationRuleRepository struct {
	db *sql.DB
}

func NewProrationRuleRepository(db *sql.DB) *ProrationRuleRepository {
	return &ProrationRuleRepository{db: db}
}

// GetByLeaseID returns the lease's proration rule, or nil when none exists.
func (r *ProrationRuleRepository) GetByLeaseID(leaseID, organizationID string) (*models.ProrationRule, error) {
	query := `SELECT lease_id, proration_method, days_in_month, organization_id
		FROM proration_rules
		WHERE lease_id = $1 AND organization_id = $2`
	rule := &models.ProrationRule{}
	err := r.db.QueryRow(query, leaseID, organizationID).Scan(
		&rule.LeaseID,
		&rule.ProrationMethod,
		&rule.DaysInMonth,
		&rule.OrganizationID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get proration rule: %w", err)
	}
	return rule, nil
}

// Upsert writes the lease's rule, inserting or replacing in one statement.
func (r *ProrationRuleRepository) Upsert(rule *models.ProrationRule) error {
	query := `
		INSERT INTO proration_rules (lease_id, proration_method, days_in_month, organization_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lease_id) DO UPDATE
		SET proration_method = EXCLUDED.proration_method,
		    days_in_month = EXCLUDED.days_in_month
	`
	_, err := r.db.Exec(query, rule.LeaseID, rule.ProrationMethod, rule.DaysInMonth, rule.OrganizationID)
	if err != nil {
		return fmt.Errorf("upsert proration rule: %w", err)
	}
	return nil
}
