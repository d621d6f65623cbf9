package repository

import (
	"github.com/sndservices/snd-crm-backend/internal/models"
	"gorm.io/gorm"
)

type FranchiseeRepository struct {
	db *gorm.DB
}

func NewFranchiseeRepository(db *gorm.DB) *FranchiseeRepository {
	return &FranchiseeRepository{db: db}
}

// Create creates a new franchisee
func (r *FranchiseeRepository) Create(franchisee *models.Franchisee) error {
	return r.db.Create(franchisee).Error
}

// GetByID retrieves a franchisee by ID
func (r *FranchiseeRepository) GetByID(id string) (*models.Franchisee, error) {
	var franchisee models.Franchisee
	err := r.db.First(&franchisee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &franchisee, nil
}

// GetByOrganization returns all franchisees of an organization
func (r *FranchiseeRepository) GetByOrganization(organizationID string) ([]models.Franchisee, error) {
	var franchisees []models.Franchisee
	err := r.db.Where("organization_id = ?", organizationID).Order("created_at ASC").Find(&franchisees).Error
	return franchisees, err
}

// Update updates a franchisee
func (r *FranchiseeRepository) Update(franchisee *models.Franchisee) error {
	return r.db.Save(franchisee).Error
}

// Delete deletes a franchisee
func (r *FranchiseeRepository) Delete(id string) error {
	return r.db.Delete(&models.Franchisee{}, "id = ?", id).Error
}
