package models

import "time"

const (
	LeaseActive     = "active"
	LeaseEnded      = "ended"
	LeaseTerminated = "terminated"
)

// Lease binds a tenant to a unit of a property for a period at a monthly
// rent. Rent is stored as integer cents.
type Lease struct {
	ID              string     `json:"id"`
	PropertyID      string     `json:"propertyId"`
	TenantID        string     `json:"tenantId"`
	UnitLabel       string     `json:"unitLabel,omitempty"`
	RentAmountCents int64      `json:"rentAmountCents"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	OrganizationID  string     `json:"organizationId"`
}
