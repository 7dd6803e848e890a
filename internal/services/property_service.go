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

type PropertyService struct {
	properties *repositories.PropertyRepository
	logger     *zap.Logger
}

func NewPropertyService(properties *repositories.PropertyRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{properties: properties, logger: logger}
}

type PropertyInput struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	City           string `json:"city"`
	UnitCount      int    `json:"unitCount"`
	OrganizationID string `json:"organizationId"`
}

func (s *PropertyService) Create(in PropertyInput) (*models.Property, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name")
	}
	p := &models.Property{
		ID:             "prop_" + uuid.NewString(),
		Name:           in.Name,
		Address:        in.Address,
		City:           in.City,
		UnitCount:      in.UnitCount,
		CreatedAt:      time.Now().UTC(),
		OrganizationID: in.OrganizationID,
	}
	if err := s.properties.Create(p); err != nil {
		s.logger.Error("create property failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) GetByID(id, organizationID string) (*models.Property, error) {
	p, err := s.properties.GetByID(id, organizationID)
	if err != nil {
		s.logger.Error("get property failed", zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("property", id)
	}
	return p, nil
}

func (s *PropertyService) List(organizationID string, limit, offset int) ([]*models.Property, error) {
	properties, err := s.properties.List(organizationID, limit, offset)
	if err != nil {
		s.logger.Error("list properties failed", zap.Error(err))
		return nil, err
	}
	return properties, nil
}

func (s *PropertyService) Update(id string, in PropertyInput) (*models.Property, error) {
	p, err := s.GetByID(id, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Address = in.Address
	p.City = in.City
	p.UnitCount = in.UnitCount
	if err := s.properties.Update(p); err != nil {
		s.logger.Error("update property failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) Delete(id, organizationID string) error {
	err := s.properties.Delete(id, organizationID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("property", id)
	}
	if err != nil {
		s.logger.Error("delete property failed", zap.Error(err))
	}
	return err
}
