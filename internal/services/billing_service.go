package services

import (
	"go.uber.org/zap"

	"rentflow/internal/apperr"
	"rentflow/internal/integrations/stripe"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

// Biller is the slice of the Stripe client the billing service needs.
type Biller interface {
	CreateCustomer(email, name string) (*stripe.Customer, error)
	CreatePaymentIntent(amountCents int64, currency, customerID string) (*stripe.PaymentIntent, error)
}

type BillingService struct {
	invoices *repositories.InvoiceRepository
	leases   *repositories.LeaseRepository
	tenants  *repositories.TenantRepository
	biller   Biller
	logger   *zap.Logger
}

func NewBillingService(
	invoices *repositories.InvoiceRepository,
	leases *repositories.LeaseRepository,
	tenants *repositories.TenantRepository,
	biller Biller,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		invoices: invoices,
		leases:   leases,
		tenants:  tenants,
		biller:   biller,
		logger:   logger,
	}
}

// OpenPayment creates a Stripe payment intent for an open invoice so the
// portal can collect it. The tenant is registered as a Stripe customer on
// first use.
func (s *BillingService) OpenPayment(invoiceID, organizationID string) (*stripe.PaymentIntent, error) {
	inv, err := s.invoices.GetByID(invoiceID, organizationID)
	if err != nil {
		s.logger.Error("load invoice for payment failed", zap.Error(err))
		return nil, err
	}
	if inv == nil {
		return nil, apperr.NotFound("invoice", invoiceID)
	}
	if inv.Status == models.InvoicePaid {
		return nil, apperr.Validationf("status", "invoice %s is already paid", invoiceID)
	}

	customerID := ""
	if lease, err := s.leases.GetByID(inv.LeaseID, organizationID); err == nil && lease != nil {
		if tenant, err := s.tenants.GetByID(lease.TenantID, organizationID); err == nil && tenant != nil && tenant.Email != "" {
			customer, err := s.biller.CreateCustomer(tenant.Email, tenant.FullName())
			if err != nil {
				// Payment can proceed without a customer record.
				s.logger.Warn("stripe customer creation failed", zap.Error(err))
			} else {
				customerID = customer.ID
			}
		}
	}

	intent, err := s.biller.CreatePaymentIntent(inv.AmountCents, "usd", customerID)
	if err != nil {
		s.logger.Error("stripe payment intent failed",
			zap.String("invoice_id", invoiceID),
			zap.Error(err),
		)
		return nil, err
	}
	return intent, nil
}
