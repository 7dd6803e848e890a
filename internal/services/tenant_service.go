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

type TenantService struct {
	tenants *repositories.TenantRepository
	logger  *zap.Logger
}

func NewTenantService(tenants *repositories.TenantRepository, logger *zap.Logger) *TenantService {
	return &TenantService{tenants: tenants, logger: logger}
}

type TenantInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	OrganizationID string `json:"organizationId"`
}

func (s *TenantService) Create(in TenantInput) (*models.Tenant, error) {
	if in.FirstName == "" && in.LastName == "" {
		return nil, apperr.Validation("firstName")
	}
	t := &models.Tenant{
		ID:             "tnt_" + uuid.NewString(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		CreatedAt:      time.Now().UTC(),
		OrganizationID: in.OrganizationID,
	}
	if err := s.tenants.Create(t); err != nil {
		s.logger.Error("create tenant failed", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *TenantService) GetByID(id, organizationID string) (*models.Tenant, error) {
	t, err := s.tenants.GetByID(id, organizationID)
	if err != nil {
		s.logger.Error("get tenant failed", zap.Error(err))
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("tenant", id)
	}
	return t, nil
}

func (s *TenantService) List(organizationID string, limit, offset int) ([]*models.Tenant, error) {
	tenants, err := s.tenants.List(organizationID, limit, offset)
	if err != nil {
		s.logger.Error("list tenants failed", zap.Error(err))
		return nil, err
	}
	return tenants, nil
}

func (s *TenantService) Update(id string, in TenantInput) (*models.Tenant, error) {
	t, err := s.GetByID(id, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	t.FirstName = in.FirstName
	t.LastName = in.LastName
	t.Email = in.Email
	t.Phone = in.Phone
	if err := s.tenants.Update(t); err != nil {
		s.logger.Error("update tenant failed", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *TenantService) Delete(id, organizationID string) error {
	err := s.tenants.Delete(id, organizationID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("tenant", id)
	}
	if err != nil {
		s.logger.Error("delete tenant failed", zap.Error(err))
	}
	return err
}
