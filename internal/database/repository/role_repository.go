package repository

import (
	"github.com/sndservices/snd-crm-backend/internal/models"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create creates a new role
func (r *RoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// GetByID retrieves a role by ID
func (r *RoleRepository) GetByID(id string) (*models.Role, error) {
	var role models.Role
	err := r.db.First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByName retrieves a role by name
func (r *RoleRepository) GetByName(name string) (*models.Role, error) {
	var role models.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetAll returns all roles
func (r *RoleRepository) GetAll() ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Find(&roles).Error
	return roles, err
}

// AssignToUser assigns a role to a user within an organization
func (r *RoleRepository) AssignToUser(assignment *models.UserOrganizationRole) error {
	return r.db.Create(assignment).Error
}

// UserHasRole checks whether the user holds an active role by name in the
// given organization.
func (r *RoleRepository) UserHasRole(userID, organizationID, roleName string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserOrganizationRole{}).
		Joins("JOIN roles ON roles.id = user_organization_roles.role_id").
		Where("user_organization_roles.user_id = ? AND user_organization_roles.organization_id = ? AND user_organization_roles.status = ? AND roles.name = ?",
			userID, organizationID, "active", roleName).
		Count(&count).Error
	return count > 0, err
}

// GetUserRoles returns all active role assignments for a user
func (r *RoleRepository) GetUserRoles(userID string) ([]models.UserOrganizationRole, error) {
	var assignments []models.UserOrganizationRole
	err := r.db.Preload("Role").
		Where("user_id = ? AND status = ?", userID, "active").
		Find(&assignments).Error
	return assignments, err
}
