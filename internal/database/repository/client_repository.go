package repository

import (
	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/utils"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client inside a transaction that also claims the next
// per-branch client number.
func (r *ClientRepository) Create(client *models.Client) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if client.ClientNumber == 0 {
			var max int
			err := tx.Model(&models.Client{}).
				Where("branch_id = ?", client.BranchID).
				Select("COALESCE(MAX(client_number), 0)").
				Scan(&max).Error
			if err != nil {
				return err
			}
			client.ClientNumber = max + 1
		}
		return tx.Create(client).Error
	})
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(id string) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByPhone retrieves a client by phone number
func (r *ClientRepository) GetByPhone(phone string) (*models.Client, error) {
	var client models.Client
	err := r.db.Where("phone = ?", phone).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByBranch returns clients of a branch with search and pagination
func (r *ClientRepository) GetByBranch(branchID string, page, pageSize int, search string) ([]models.Client, int64, error) {
	var clients []models.Client
	var total int64
	query := r.db.Model(&models.Client{}).Where("branch_id = ?", branchID)
	if search != "" {
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR phone LIKE ? OR company_name ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("client_number ASC").
		Offset(utils.CalculateOffset(page, pageSize)).Limit(pageSize).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// GetAllByBranch returns every client of a branch, for exports
func (r *ClientRepository) GetAllByBranch(branchID string) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Where("branch_id = ?", branchID).Order("client_number ASC").Find(&clients).Error
	return clients, err
}

// CheckPhoneExists checks if a client with the phone number exists
func (r *ClientRepository) CheckPhoneExists(phone string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Client{}).Where("phone = ?", phone).Count(&count).Error
	return count > 0, err
}

// Update updates a client
func (r *ClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete deletes a client
func (r *ClientRepository) Delete(id string) error {
	return r.db.Delete(&models.Client{}, "id = ?", id).Error
}
