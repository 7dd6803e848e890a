package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"rentflow/internal/models"
)

type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `id, lease_id, amount_cents, description, due_date, status,
	paid_at, notice_stage, created_at, updated_at, organization_id`

func scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var paidAt sql.NullTime
	err := row.Scan(
		&inv.ID,
		&inv.LeaseID,
		&inv.AmountCents,
		&inv.Description,
		&inv.DueDate,
		&inv.Status,
		&paidAt,
		&inv.NoticeStage,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&inv.OrganizationID,
	)
	if err != nil {
		return nil, err
	}
	if paidAt.Valid {
		inv.PaidAt = &paidAt.Time
	}
	return inv, nil
}

func (r *InvoiceRepository) Create(inv *models.Invoice) error {
	query := `
		INSERT INTO invoices
			(id, lease_id, amount_cents, description, due_date, status,
			 paid_at, notice_stage, created_at, updated_at, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(query,
		inv.ID, inv.LeaseID, inv.AmountCents, inv.Description, inv.DueDate, inv.Status,
		inv.PaidAt, inv.NoticeStage, inv.CreatedAt, inv.UpdatedAt, inv.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) GetByID(id, organizationID string) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND organization_id = $2`
	inv, err := scanInvoice(r.db.QueryRow(query, id, organizationID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return inv, nil
}

// List returns the organization's ledger, optionally narrowed by lease
// and/or status, newest due date first.
func (r *InvoiceRepository) List(organizationID, leaseID, status string, limit, offset int) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE organization_id = $1`
	args := []any{organizationID}
	i := 2
	if leaseID != "" {
		query += fmt.Sprintf(" AND lease_id = $%d", i)
		args = append(args, leaseID)
		i++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, status)
		i++
	}
	query += fmt.Sprintf(" ORDER BY due_date DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// ListOverdueOpen returns open invoices whose due date is before asOf,
// across all organizations. The dunning job walks this set.
func (r *InvoiceRepository) ListOverdueOpen(asOf time.Time) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE status = $1 AND due_date < $2
		ORDER BY organization_id, due_date`
	rows, err := r.db.Query(query, models.InvoiceOpen, asOf)
	if err != nil {
		return nil, fmt.Errorf("list overdue invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan overdue invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) MarkPaid(id, organizationID string, paidAt time.Time) (bool, error) {
	res, err := r.db.Exec(`UPDATE invoices
		SET status = $1, paid_at = $2, updated_at = $2
		WHERE id = $3 AND organization_id = $4 AND status <> $1`,
		models.InvoicePaid, paidAt, id, organizationID)
	if err != nil {
		return false, fmt.Errorf("mark invoice paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark invoice paid: %w", err)
	}
	return affected > 0, nil
}

// SetNoticeStage records the highest dunning notice sent for the invoice.
func (r *InvoiceRepository) SetNoticeStage(id, organizationID string, stage int, now time.Time) error {
	_, err := r.db.Exec(`UPDATE invoices
		SET notice_stage = $1, updated_at = $2
		WHERE id = $3 AND organization_id = $4`,
		stage, now, id, organizationID)
	if err != nil {
		return fmt.Errorf("set invoice notice stage: %w", err)
	}
	return nil
}

// Summary aggregates the organization's ledger for reporting.
type InvoiceSummary struct {
	TotalCount       int
	OpenCount        int
	PaidCount        int
	CollectedCents   int64
	OutstandingCents int64
}

func (r *InvoiceRepository) Summarize(organizationID string) (*InvoiceSummary, error) {
	query := `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'open'),
		COUNT(*) FILTER (WHERE status = 'paid'),
		COALESCE(SUM(amount_cents) FILTER (WHERE status = 'paid'), 0),
		COALESCE(SUM(amount_cents) FILTER (WHERE status = 'open'), 0)
		FROM invoices WHERE organization_id = $1`
	s := &InvoiceSummary{}
	err := r.db.QueryRow(query, organizationID).Scan(
		&s.TotalCount, &s.OpenCount, &s.PaidCount, &s.CollectedCents, &s.OutstandingCents,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize invoices: %w", err)
	}
	return s, nil
}
