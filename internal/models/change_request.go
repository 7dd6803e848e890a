package models

import "time"

const (
	ChangeRequestPending  = "pending"
	ChangeRequestApproved = "approved"
	ChangeRequestDenied   = "denied"
)

// ScheduleChangeRequest is a tenant-submitted proposal to alter a payment
// schedule's due day or start date. It is created pending and transitions
// exactly once to approved or denied.
type ScheduleChangeRequest struct {
	ID                 string     `json:"id"`
	ScheduleID         string     `json:"scheduleId"`
	TenantID           *string    `json:"tenantId,omitempty"`
	RequestedDueDay    *int       `json:"requestedDueDay,omitempty"`
	RequestedStartDate *time.Time `json:"requestedStartDate,omitempty"`
	Reason             string     `json:"reason,omitempty"`
	Status             string     `json:"status"`
	ManagerNote        string     `json:"managerNote,omitempty"`
	EffectiveDate      *time.Time `json:"effectiveDate,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	OrganizationID     string     `json:"organizationId"`

	// TenantName is populated by list queries joining the tenants table.
	TenantName string `json:"tenantName,omitempty"`
}
