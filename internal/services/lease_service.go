package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentflow/internal/apperr"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

type LeaseService struct {
	leases     *repositories.LeaseRepository
	properties *repositories.PropertyRepository
	tenants    *repositories.TenantRepository
	logger     *zap.Logger
}

func NewLeaseService(
	leases *repositories.LeaseRepository,
	properties *repositories.PropertyRepository,
	tenants *repositories.TenantRepository,
	logger *zap.Logger,
) *LeaseService {
	return &LeaseService{leases: leases, properties: properties, tenants: tenants, logger: logger}
}

type CreateLeaseInput struct {
	PropertyID     string     `json:"propertyId"`
	TenantID       string     `json:"tenantId"`
	UnitLabel      string     `json:"unitLabel"`
	RentAmount     *float64   `json:"rentAmount"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	OrganizationID string     `json:"organizationId"`
}

func (s *LeaseService) Create(in CreateLeaseInput) (*models.Lease, error) {
	if in.PropertyID == "" {
		return nil, apperr.Validation("propertyId")
	}
	if in.TenantID == "" {
		return nil, apperr.Validation("tenantId")
	}
	if in.RentAmount == nil {
		return nil, apperr.Validation("rentAmount")
	}

	property, err := s.properties.GetByID(in.PropertyID, in.OrganizationID)
	if err != nil {
		s.logger.Error("load property for lease failed", zap.Error(err))
		return nil, err
	}
	if property == nil {
		return nil, apperr.NotFound("property", in.PropertyID)
	}
	tenant, err := s.tenants.GetByID(in.TenantID, in.OrganizationID)
	if err != nil {
		s.logger.Error("load tenant for lease failed", zap.Error(err))
		return nil, err
	}
	if tenant == nil {
		return nil, apperr.NotFound("tenant", in.TenantID)
	}

	now := time.Now().UTC()
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}
	lease := &models.Lease{
		ID:              "lease_" + uuid.NewString(),
		PropertyID:      in.PropertyID,
		TenantID:        in.TenantID,
		UnitLabel:       in.UnitLabel,
		RentAmountCents: ToCents(*in.RentAmount),
		StartDate:       start,
		EndDate:         in.EndDate,
		Status:          models.LeaseActive,
		CreatedAt:       now,
		OrganizationID:  in.OrganizationID,
	}
	if err := s.leases.Create(lease); err != nil {
		s.logger.Error("create lease failed", zap.Error(err))
		return nil, err
	}
	return lease, nil
}

func (s *LeaseService) GetByID(id, organizationID string) (*models.Lease, error) {
	lease, err := s.leases.GetByID(id, organizationID)
	if err != nil {
		s.logger.Error("get lease failed", zap.Error(err))
		return nil, err
	}
	if lease == nil {
		return nil, apperr.NotFound("lease", id)
	}
	return lease, nil
}

func (s *LeaseService) List(organizationID, propertyID string, limit, offset int) ([]*models.Lease, error) {
	leases, err := s.leases.List(organizationID, propertyID, limit, offset)
	if err != nil {
		s.logger.Error("list leases failed", zap.Error(err))
		return nil, err
	}
	return leases, nil
}

var leaseTransitions = map[string]map[string]bool{
	models.LeaseActive:     {models.LeaseEnded: true, models.LeaseTerminated: true},
	models.LeaseEnded:      {},
	models.LeaseTerminated: {},
}

func (s *LeaseService) UpdateStatus(id, organizationID, status string) (*models.Lease, error) {
	lease, err := s.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	nexts, ok := leaseTransitions[lease.Status]
	if !ok || !nexts[status] {
		return nil, apperr.Validationf("status", "cannot move lease from %s to %s", lease.Status, status)
	}
	if err := s.leases.UpdateStatus(id, organizationID, status); err != nil {
		s.logger.Error("update lease status failed", zap.Error(err))
		return nil, err
	}
	lease.Status = status
	return lease, nil
}
