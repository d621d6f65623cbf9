package services

import (
	"errors"
	"fmt"

	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/models"
)

// ErrRoleNotFound is returned when no role matches the lookup
var ErrRoleNotFound = errors.New("role not found")

// RoleService owns role assignment logic
type RoleService struct {
	roleRepo         *repository.RoleRepository
	userRepo         *repository.UserRepository
	organizationRepo *repository.OrganizationRepository
}

func NewRoleService(roleRepo *repository.RoleRepository, userRepo *repository.UserRepository, organizationRepo *repository.OrganizationRepository) *RoleService {
	return &RoleService{
		roleRepo:         roleRepo,
		userRepo:         userRepo,
		organizationRepo: organizationRepo,
	}
}

// GetAll returns every role definition
func (s *RoleService) GetAll() ([]models.Role, error) {
	return s.roleRepo.GetAll()
}

// AssignRole grants a named role to a user within an organization
func (s *RoleService) AssignRole(userID, organizationID, roleName string) (*models.UserOrganizationRole, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if _, err := s.organizationRepo.GetByID(organizationID); err != nil {
		return nil, fmt.Errorf("organization not found: %w", err)
	}
	role, err := s.roleRepo.GetByName(roleName)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	assignment := &models.UserOrganizationRole{
		UserID:         userID,
		OrganizationID: organizationID,
		RoleID:         role.ID,
		Status:         "active",
	}
	if err := s.roleRepo.AssignToUser(assignment); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}
	return assignment, nil
}

// GetUserRoles returns every role assignment for a user
func (s *RoleService) GetUserRoles(userID string) ([]models.UserOrganizationRole, error) {
	return s.roleRepo.GetUserRoles(userID)
}

// UserHasRole reports whether the user holds an active role in the
// organization
func (s *RoleService) UserHasRole(userID, organizationID, roleName string) (bool, error) {
	return s.roleRepo.UserHasRole(userID, organizationID, roleName)
}
