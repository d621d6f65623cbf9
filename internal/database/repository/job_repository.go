package repository

import (
	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/utils"

	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job inside a transaction that also claims the next
// global job number.
func (r *JobRepository) Create(job *models.Job) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if job.JobNumber == 0 {
			var max int
			err := tx.Model(&models.Job{}).
				Select("COALESCE(MAX(job_number), 0)").
				Scan(&max).Error
			if err != nil {
				return err
			}
			job.JobNumber = max + 1
		}
		return tx.Create(job).Error
	})
}

// GetByID retrieves a job by ID with its line items and payments
func (r *JobRepository) GetByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Items").Preload("Payments").Preload("Client").
		First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByBranch returns jobs of a branch filtered by status with pagination
func (r *JobRepository) GetByBranch(branchID, status string, page, pageSize int) ([]models.Job, int64, error) {
	var jobs []models.Job
	var total int64
	query := r.db.Model(&models.Job{}).Where("branch_id = ?", branchID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("job_number DESC").
		Offset(utils.CalculateOffset(page, pageSize)).Limit(pageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// GetByClient returns all jobs for a client
func (r *JobRepository) GetByClient(clientID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("client_id = ?", clientID).Order("job_number DESC").Find(&jobs).Error
	return jobs, err
}

// GetByTech returns all jobs assigned to a technician
func (r *JobRepository) GetByTech(techID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("tech_id = ?", techID).Order("job_number DESC").Find(&jobs).Error
	return jobs, err
}

// Update updates a job
func (r *JobRepository) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

// UpdateStatus updates only the job status
func (r *JobRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&models.Job{}).Where("id = ?", id).Update("status", status).Error
}

// Delete deletes a job
func (r *JobRepository) Delete(id string) error {
	return r.db.Delete(&models.Job{}, "id = ?", id).Error
}
