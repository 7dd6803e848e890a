package models

import "time"

const (
	InvoiceDraft   = "draft"
	InvoiceOpen    = "open"
	InvoicePaid    = "paid"
	InvoiceVoid    = "void"
	InvoiceOverdue = "overdue"
)

// Invoice is one rent ledger entry for a lease. NoticeStage records the
// highest dunning notice already sent (0 = none, 4 = final).
type Invoice struct {
	ID             string     `json:"id"`
	LeaseID        string     `json:"leaseId"`
	AmountCents    int64      `json:"amountCents"`
	Description    string     `json:"description,omitempty"`
	DueDate        time.Time  `json:"dueDate"`
	Status         string     `json:"status"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
	NoticeStage    int        `json:"noticeStage"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	OrganizationID string     `json:"organizationId"`
}

// DaysPastDue is the whole number of days now is past the due date.
// Zero when the invoice is not yet due.
func (i *Invoice) DaysPastDue(now time.Time) int {
	if !now.After(i.DueDate) {
		return 0
	}
	return int(now.Sub(i.DueDate).Hours() / 24)
}
