package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentflow/internal/apperr"
	"rentflow/internal/models"
	"rentflow/internal/pdf"
	"rentflow/internal/repositories"
)

type InvoiceService struct {
	invoices *repositories.InvoiceRepository
	leases   *repositories.LeaseRepository
	tenants  *repositories.TenantRepository
	pdfGen   pdf.Generator
	logger   *zap.Logger
}

func NewInvoiceService(
	invoices *repositories.InvoiceRepository,
	leases *repositories.LeaseRepository,
	tenants *repositories.TenantRepository,
	pdfGen pdf.Generator,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		leases:   leases,
		tenants:  tenants,
		pdfGen:   pdfGen,
		logger:   logger,
	}
}

type CreateInvoiceInput struct {
	LeaseID        string     `json:"leaseId"`
	Amount         *float64   `json:"amount"`
	Description    string     `json:"description"`
	DueDate        *time.Time `json:"dueDate"`
	OrganizationID string     `json:"organizationId"`
}

func (s *InvoiceService) Create(in CreateInvoiceInput) (*models.Invoice, error) {
	if in.LeaseID == "" {
		return nil, apperr.Validation("leaseId")
	}
	if in.Amount == nil {
		return nil, apperr.Validation("amount")
	}
	if in.DueDate == nil {
		return nil, apperr.Validation("dueDate")
	}
	lease, err := s.leases.GetByID(in.LeaseID, in.OrganizationID)
	if err != nil {
		s.logger.Error("load lease for invoice failed", zap.Error(err))
		return nil, err
	}
	if lease == nil {
		return nil, apperr.NotFound("lease", in.LeaseID)
	}

	now := time.Now().UTC()
	inv := &models.Invoice{
		ID:             "inv_" + uuid.NewString(),
		LeaseID:        in.LeaseID,
		AmountCents:    ToCents(*in.Amount),
		Description:    in.Description,
		DueDate:        *in.DueDate,
		Status:         models.InvoiceOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
		OrganizationID: in.OrganizationID,
	}
	if err := s.invoices.Create(inv); err != nil {
		s.logger.Error("create invoice failed", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) GetByID(id, organizationID string) (*models.Invoice, error) {
	inv, err := s.invoices.GetByID(id, organizationID)
	if err != nil {
		s.logger.Error("get invoice failed", zap.Error(err))
		return nil, err
	}
	if inv == nil {
		return nil, apperr.NotFound("invoice", id)
	}
	return inv, nil
}

func (s *InvoiceService) List(organizationID, leaseID, status string, limit, offset int) ([]*models.Invoice, error) {
	invoices, err := s.invoices.List(organizationID, leaseID, status, limit, offset)
	if err != nil {
		s.logger.Error("list invoices failed", zap.Error(err))
		return nil, err
	}
	return invoices, nil
}

// MarkPaid settles an invoice. Paying twice is a validation error, not a
// silent success.
func (s *InvoiceService) MarkPaid(id, organizationID string) (*models.Invoice, error) {
	inv, err := s.invoices.GetByID(id, organizationID)
	if err != nil {
		s.logger.Error("load invoice failed", zap.Error(err))
		return nil, err
	}
	if inv == nil {
		return nil, apperr.NotFound("invoice", id)
	}

	now := time.Now().UTC()
	ok, err := s.invoices.MarkPaid(id, organizationID, now)
	if err != nil {
		s.logger.Error("mark invoice paid failed", zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, apperr.Validationf("status", "invoice %s is already paid", id)
	}
	inv.Status = models.InvoicePaid
	inv.PaidAt = &now
	inv.UpdatedAt = now
	return inv, nil
}

// RenderPDF produces the printable invoice document.
func (s *InvoiceService) RenderPDF(id, organizationID string) ([]byte, error) {
	inv, err := s.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}

	data := pdf.InvoiceData{
		InvoiceID:   inv.ID,
		AmountCents: inv.AmountCents,
		Description: inv.Description,
		DueDate:     inv.DueDate,
		IssuedAt:    inv.CreatedAt,
	}
	if lease, err := s.leases.GetByID(inv.LeaseID, organizationID); err == nil && lease != nil {
		data.UnitLabel = lease.UnitLabel
		if tenant, err := s.tenants.GetByID(lease.TenantID, organizationID); err == nil && tenant != nil {
			data.TenantName = tenant.FullName()
		}
	}

	out, err := s.pdfGen.GenerateRentInvoice(data)
	if err != nil {
		s.logger.Error("render invoice pdf failed", zap.String("invoice_id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}
