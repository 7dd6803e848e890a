package models

import "time"

const (
	WorkOrderOpen       = "open"
	WorkOrderInProgress = "in_progress"
	WorkOrderCompleted  = "completed"
	WorkOrderCancelled  = "cancelled"
)

// WorkOrder is a maintenance request against a property, optionally tied
// to a lease and assigned to a vendor.
type WorkOrder struct {
	ID             string     `json:"id"`
	PropertyID     string     `json:"propertyId"`
	LeaseID        *string    `json:"leaseId,omitempty"`
	VendorID       *string    `json:"vendorId,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	Status         string     `json:"status"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	OrganizationID string     `json:"organizationId"`
}

type Vendor struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Trade          string    `json:"trade,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	OrganizationID string    `json:"organizationId"`
}
