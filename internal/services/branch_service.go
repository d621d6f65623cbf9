package services

import (
	"errors"
	"fmt"

	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/models"
)

var (
	// ErrBranchNotFound is returned when no branch matches the lookup
	ErrBranchNotFound = errors.New("branch not found")
	// ErrBranchCodeExists is returned for a duplicate branch code
	ErrBranchCodeExists = errors.New("branch code already in use")
)

// BranchService owns branch business logic
type BranchService struct {
	branchRepo     *repository.BranchRepository
	franchiseeRepo *repository.FranchiseeRepository
}

func NewBranchService(branchRepo *repository.BranchRepository, franchiseeRepo *repository.FranchiseeRepository) *BranchService {
	return &BranchService{
		branchRepo:     branchRepo,
		franchiseeRepo: franchiseeRepo,
	}
}

// Create validates and creates a new branch
func (s *BranchService) Create(branch *models.Branch) (*models.Branch, error) {
	if _, err := s.franchiseeRepo.GetByID(branch.FranchiseeID); err != nil {
		return nil, fmt.Errorf("franchisee not found: %w", err)
	}

	exists, err := s.branchRepo.CheckCodeExists(branch.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check branch code: %w", err)
	}
	if exists {
		return nil, ErrBranchCodeExists
	}

	if branch.Status == "" {
		branch.Status = models.BranchStatusActive
	}

	if err := s.branchRepo.Create(branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	return branch, nil
}

// GetByID fetches a single branch
func (s *BranchService) GetByID(id string) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(id)
	if err != nil {
		return nil, ErrBranchNotFound
	}
	return branch, nil
}

// GetByFranchisee returns all branches of a franchisee
func (s *BranchService) GetByFranchisee(franchiseeID string) ([]models.Branch, error) {
	return s.branchRepo.GetByFranchisee(franchiseeID)
}

// Update modifies a branch
func (s *BranchService) Update(id string, updates *models.Branch) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(id)
	if err != nil {
		return nil, ErrBranchNotFound
	}

	if updates.Code != "" && updates.Code != branch.Code {
		exists, err := s.branchRepo.CheckCodeExists(updates.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to check branch code: %w", err)
		}
		if exists {
			return nil, ErrBranchCodeExists
		}
		branch.Code = updates.Code
	}
	if updates.Name != "" {
		branch.Name = updates.Name
	}
	if updates.Type != "" {
		branch.Type = updates.Type
	}
	if updates.Email != "" {
		branch.Email = updates.Email
	}
	if updates.Phone != "" {
		branch.Phone = updates.Phone
	}
	if updates.Status != "" {
		branch.Status = updates.Status
	}

	if err := s.branchRepo.Update(branch); err != nil {
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return branch, nil
}

// Delete removes a branch
func (s *BranchService) Delete(id string) error {
	if _, err := s.branchRepo.GetByID(id); err != nil {
		return ErrBranchNotFound
	}
	return s.branchRepo.Delete(id)
}
