package models

// DunningSettings holds the per-organization late-notice day thresholds.
// One active row per organization.
type DunningSettings struct {
	OrganizationID   string `json:"organizationId"`
	FirstNoticeDays  int    `json:"firstNoticeDays"`
	SecondNoticeDays int    `json:"secondNoticeDays"`
	ThirdNoticeDays  int    `json:"thirdNoticeDays"`
	FinalNoticeDays  int    `json:"finalNoticeDays"`
	IsActive         bool   `json:"isActive"`
}

// DefaultDunningSettings are served when an organization has no stored row.
// They are never persisted on read.
func DefaultDunningSettings(orgID string) *DunningSettings {
	return &DunningSettings{
		OrganizationID:   orgID,
		FirstNoticeDays:  3,
		SecondNoticeDays: 7,
		ThirdNoticeDays:  14,
		FinalNoticeDays:  30,
		IsActive:         true,
	}
}
