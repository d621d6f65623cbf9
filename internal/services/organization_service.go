package services

import (
	"errors"
	"fmt"

	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/models"
)

// ErrOrganizationNotFound is returned when no organization matches the lookup
var ErrOrganizationNotFound = errors.New("organization not found")

// OrganizationService owns organization business logic
type OrganizationService struct {
	organizationRepo *repository.OrganizationRepository
}

func NewOrganizationService(organizationRepo *repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{organizationRepo: organizationRepo}
}

// Create creates a new organization
func (s *OrganizationService) Create(organization *models.Organization) (*models.Organization, error) {
	if organization.Status == "" {
		organization.Status = "active"
	}
	if err := s.organizationRepo.Create(organization); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return organization, nil
}

// GetByID fetches a single organization
func (s *OrganizationService) GetByID(id string) (*models.Organization, error) {
	organization, err := s.organizationRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrganizationNotFound
	}
	return organization, nil
}

// GetAll returns every organization
func (s *OrganizationService) GetAll() ([]models.Organization, error) {
	return s.organizationRepo.GetAll()
}

// Update modifies an organization
func (s *OrganizationService) Update(id string, updates *models.Organization) (*models.Organization, error) {
	organization, err := s.organizationRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrganizationNotFound
	}

	if updates.Name != "" {
		organization.Name = updates.Name
	}
	if updates.Email != "" {
		organization.Email = updates.Email
	}
	if updates.Phone != "" {
		organization.Phone = updates.Phone
	}
	if updates.Status != "" {
		organization.Status = updates.Status
	}

	if err := s.organizationRepo.Update(organization); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return organization, nil
}

// Delete removes an organization
func (s *OrganizationService) Delete(id string) error {
	if _, err := s.organizationRepo.GetByID(id); err != nil {
		return ErrOrganizationNotFound
	}
	return s.organizationRepo.Delete(id)
}
