package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentflow/internal/apperr"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

var workOrderTransitions = map[string]map[string]bool{
	models.WorkOrderOpen:       {models.WorkOrderInProgress: true, models.WorkOrderCancelled: true},
	models.WorkOrderInProgress: {models.WorkOrderCompleted: true, models.WorkOrderCancelled: true},
	models.WorkOrderCompleted:  {},
	models.WorkOrderCancelled:  {},
}

type WorkOrderService struct {
	orders  *repositories.WorkOrderRepository
	vendors *repositories.VendorRepository
	logger  *zap.Logger
}

func NewWorkOrderService(orders *repositories.WorkOrderRepository, vendors *repositories.VendorRepository, logger *zap.Logger) *WorkOrderService {
	return &WorkOrderService{orders: orders, vendors: vendors, logger: logger}
}

type CreateWorkOrderInput struct {
	PropertyID     string  `json:"propertyId"`
	LeaseID        *string `json:"leaseId"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	OrganizationID string  `json:"organizationId"`
}

func (s *WorkOrderService) Create(in CreateWorkOrderInput) (*models.WorkOrder, error) {
	if in.PropertyID == "" {
		return nil, apperr.Validation("propertyId")
	}
	if in.Title == "" {
		return nil, apperr.Validation("title")
	}
	priority := in.Priority
	if priority == "" {
		priority = "normal"
	}
	now := time.Now().UTC()
	wo := &models.WorkOrder{
		ID:             "wo_" + uuid.NewString(),
		PropertyID:     in.PropertyID,
		LeaseID:        in.LeaseID,
		Title:          in.Title,
		Description:    in.Description,
		Priority:       priority,
		Status:         models.WorkOrderOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
		OrganizationID: in.OrganizationID,
	}
	if err := s.orders.Create(wo); err != nil {
		s.logger.Error("create work order failed", zap.Error(err))
		return nil, err
	}
	return wo, nil
}

func (s *WorkOrderService) GetByID(id, organizationID string) (*models.WorkOrder, error) {
	wo, err := s.orders.GetByID(id, organizationID)
	if err != nil {
		s.logger.Error("get work order failed", zap.Error(err))
		return nil, err
	}
	if wo == nil {
		return nil, apperr.NotFound("work order", id)
	}
	return wo, nil
}

func (s *WorkOrderService) List(organizationID, propertyID, status string, limit, offset int) ([]*models.WorkOrder, error) {
	orders, err := s.orders.List(organizationID, propertyID, status, limit, offset)
	if err != nil {
		s.logger.Error("list work orders failed", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (s *WorkOrderService) UpdateStatus(id, organizationID, status string) (*models.WorkOrder, error) {
	wo, err := s.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	nexts, ok := workOrderTransitions[wo.Status]
	if !ok || !nexts[status] {
		return nil, apperr.Validationf("status", "cannot move work order from %s to %s", wo.Status, status)
	}

	now := time.Now().UTC()
	var completedAt *time.Time
	if status == models.WorkOrderCompleted {
		completedAt = &now
	}
	if err := s.orders.UpdateStatus(id, organizationID, status, completedAt, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("work order", id)
		}
		s.logger.Error("update work order status failed", zap.Error(err))
		return nil, err
	}
	wo.Status = status
	wo.CompletedAt = completedAt
	wo.UpdatedAt = now
	return wo, nil
}

func (s *WorkOrderService) AssignVendor(id, organizationID, vendorID string) (*models.WorkOrder, error) {
	wo, err := s.GetByID(id, organizationID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.GetByID(vendorID, organizationID)
	if err != nil {
		s.logger.Error("load vendor failed", zap.Error(err))
		return nil, err
	}
	if vendor == nil {
		return nil, apperr.NotFound("vendor", vendorID)
	}

	now := time.Now().UTC()
	if err := s.orders.AssignVendor(id, organizationID, vendorID, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("work order", id)
		}
		s.logger.Error("assign vendor failed", zap.Error(err))
		return nil, err
	}
	wo.VendorID = &vendorID
	wo.UpdatedAt = now
	return wo, nil
}

type VendorInput struct {
	Name           string `json:"name"`
	Trade          string `json:"trade"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	OrganizationID string `json:"organizationId"`
}

func (s *WorkOrderService) CreateVendor(in VendorInput) (*models.Vendor, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name")
	}
	v := &models.Vendor{
		ID:             "vnd_" + uuid.NewString(),
		Name:           in.Name,
		Trade:          in.Trade,
		Email:          in.Email,
		Phone:          in.Phone,
		CreatedAt:      time.Now().UTC(),
		OrganizationID: in.OrganizationID,
	}
	if err := s.vendors.Create(v); err != nil {
		s.logger.Error("create vendor failed", zap.Error(err))
		return nil, err
	}
	return v, nil
}

func (s *WorkOrderService) ListVendors(organizationID string) ([]*models.Vendor, error) {
	vendors, err := s.vendors.List(organizationID)
	if err != nil {
		s.logger.Error("list vendors failed", zap.Error(err))
		return nil, err
	}
	return vendors, nil
}
