package models

import "time"

// DefaultOrganizationID is applied when a request carries no organizationId.
const DefaultOrganizationID = "org_1"

// PaymentSchedule is one rent collection rule for a lease. Amounts are
// stored as integer cents; due_day is the day of month (1-31).
type PaymentSchedule struct {
	ID              string     `json:"id"`
	LeaseID         string     `json:"leaseId"`
	RentAmountCents int64      `json:"rentAmountCents"`
	DueDay          int        `json:"dueDay"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	OrganizationID  string     `json:"organizationId"`
}

// ProrationRule overrides the proration defaults for a single lease.
type ProrationRule struct {
	LeaseID         string `json:"leaseId"`
	ProrationMethod string `json:"prorationMethod"`
	DaysInMonth     int    `json:"daysInMonth"`
	OrganizationID  string `json:"organizationId"`
}
