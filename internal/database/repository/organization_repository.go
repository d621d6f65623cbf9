package repository

import (
	"github.com/sndservices/snd-crm-backend/internal/models"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(organization *models.Organization) error {
	return r.db.Create(organization).Error
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(id string) (*models.Organization, error) {
	var organization models.Organization
	err := r.db.First(&organization, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &organization, nil
}

// GetAll returns all organizations
func (r *OrganizationRepository) GetAll() ([]models.Organization, error) {
	var organizations []models.Organization
	err := r.db.Order("created_at ASC").Find(&organizations).Error
	return organizations, err
}

// Update updates an organization
func (r *OrganizationRepository) Update(organization *models.Organization) error {
	return r.db.Save(organization).Error
}

// Delete deletes an organization
func (r *OrganizationRepository) Delete(id string) error {
	return r.db.Delete(&models.Organization{}, "id = ?", id).Error
}
