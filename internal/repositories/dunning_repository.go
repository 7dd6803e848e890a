package repositories

import (
	"database/sql"
	"fmt"

	"rentflow/internal/models"
)

type DunningRepository struct {
	db *sql.DB
}

func NewDunningRepository(db *sql.DB) *DunningRepository {
	return &DunningRepository{db: db}
}

// Get returns the organization's active settings row, or nil when none
// exists. Callers fall back to defaults; the fallback is never written back.
func (r *DunningRepository) Get(organizationID string) (*models.DunningSettings, error) {
	query := `SELECT organization_id, first_notice_days, second_notice_days,
		third_notice_days, final_notice_days, is_active
		FROM dunning_settings
		WHERE organization_id = $1 AND is_active = TRUE`
	s := &models.DunningSettings{}
	err := r.db.QueryRow(query, organizationID).Scan(
		&s.OrganizationID,
		&s.FirstNoticeDays,
		&s.SecondNoticeDays,
		&s.ThirdNoticeDays,
		&s.FinalNoticeDays,
		&s.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dunning settings: %w", err)
	}
	return s, nil
}

// Upsert updates the organization's row in place, or inserts a new active
// one when absent.
func (r *DunningRepository) Upsert(s *models.DunningSettings) error {
	query := `
		INSERT INTO dunning_settings
			(organization_id, first_notice_days, second_notice_days,
			 third_notice_days, final_notice_days, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (organization_id) DO UPDATE
		SET first_notice_days = EXCLUDED.first_notice_days,
		    second_notice_days = EXCLUDED.second_notice_days,
		    third_notice_days = EXCLUDED.third_notice_days,
		    final_notice_days = EXCLUDED.final_notice_days
	`
	_, err := r.db.Exec(query,
		s.OrganizationID,
		s.FirstNoticeDays,
		s.SecondNoticeDays,
		s.ThirdNoticeDays,
		s.FinalNoticeDays,
	)
	if err != nil {
		return fmt.Errorf("upsert dunning settings: %w", err)
	}
	return nil
}
