package repository

import (
	"github.com/sndservices/snd-crm-backend/internal/models"
	"gorm.io/gorm"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// Create creates a new branch
func (r *BranchRepository) Create(branch *models.Branch) error {
	return r.db.Create(branch).Error
}

// GetByID retrieves a branch by ID
func (r *BranchRepository) GetByID(id string) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.First(&branch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// GetByFranchisee returns all branches of a franchisee
func (r *BranchRepository) GetByFranchisee(franchiseeID string) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.Where("franchisee_id = ?", franchiseeID).Order("created_at ASC").Find(&branches).Error
	return branches, err
}

// CheckCodeExists checks if a branch code is already taken
func (r *BranchRepository) CheckCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Branch{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// Update updates a branch
func (r *BranchRepository) Update(branch *models.Branch) error {
	return r.db.Save(branch).Error
}

// Delete deletes a branch
func (r *BranchRepository) Delete(id string) error {
	return r.db.Delete(&models.Branch{}, "id = ?", id).Error
}
