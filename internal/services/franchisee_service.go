package services

import (
	"errors"
	"fmt"

	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/models"
)

// ErrFranchiseeNotFound is returned when no franchisee matches the lookup
var ErrFranchiseeNotFound = errors.New("franchisee not found")

// FranchiseeService owns franchisee business logic
type FranchiseeService struct {
	franchiseeRepo   *repository.FranchiseeRepository
	organizationRepo *repository.OrganizationRepository
}

func NewFranchiseeService(franchiseeRepo *repository.FranchiseeRepository, organizationRepo *repository.OrganizationRepository) *FranchiseeService {
	return &FranchiseeService{
		franchiseeRepo:   franchiseeRepo,
		organizationRepo: organizationRepo,
	}
}

// Create validates and creates a new franchisee
func (s *FranchiseeService) Create(franchisee *models.Franchisee) (*models.Franchisee, error) {
	if _, err := s.organizationRepo.GetByID(franchisee.OrganizationID); err != nil {
		return nil, fmt.Errorf("organization not found: %w", err)
	}

	if franchisee.Status == "" {
		franchisee.Status = "active"
	}

	if err := s.franchiseeRepo.Create(franchisee); err != nil {
		return nil, fmt.Errorf("failed to create franchisee: %w", err)
	}
	return franchisee, nil
}

// GetByID fetches a single franchisee
func (s *FranchiseeService) GetByID(id string) (*models.Franchisee, error) {
	franchisee, err := s.franchiseeRepo.GetByID(id)
	if err != nil {
		return nil, ErrFranchiseeNotFound
	}
	return franchisee, nil
}

// GetByOrganization returns all franchisees of an organization
func (s *FranchiseeService) GetByOrganization(organizationID string) ([]models.Franchisee, error) {
	return s.franchiseeRepo.GetByOrganization(organizationID)
}

// Update modifies a franchisee
func (s *FranchiseeService) Update(id string, updates *models.Franchisee) (*models.Franchisee, error) {
	franchisee, err := s.franchiseeRepo.GetByID(id)
	if err != nil {
		return nil, ErrFranchiseeNotFound
	}

	if updates.Name != "" {
		franchisee.Name = updates.Name
	}
	if updates.Email != "" {
		franchisee.Email = updates.Email
	}
	if updates.Phone != "" {
		franchisee.Phone = updates.Phone
	}
	if updates.Status != "" {
		franchisee.Status = updates.Status
	}

	if err := s.franchiseeRepo.Update(franchisee); err != nil {
		return nil, fmt.Errorf("failed to update franchisee: %w", err)
	}
	return franchisee, nil
}

// Delete removes a franchisee
func (s *FranchiseeService) Delete(id string) error {
	if _, err := s.franchiseeRepo.GetByID(id); err != nil {
		return ErrFranchiseeNotFound
	}
	return s.franchiseeRepo.Delete(id)
}
