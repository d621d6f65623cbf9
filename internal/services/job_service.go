package services

import (
	"errors"
	"fmt"

	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/models"
)

var (
	// ErrJobNotFound is returned when no job matches the lookup
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidJobStatus is returned for an unknown status value
	ErrInvalidJobStatus = errors.New("invalid job status")
)

var validJobStatuses = map[string]bool{
	models.JobStatusPending:             true,
	models.JobStatusSubmitted:           true,
	models.JobStatusInProgress:          true,
	models.JobStatusDone:                true,
	models.JobStatusDonePendingApproval: true,
	models.JobStatusCancelled:           true,
}

// JobService owns job business logic. The global job number is assigned in
// the repository transaction on create.
type JobService struct {
	jobRepo    *repository.JobRepository
	clientRepo *repository.ClientRepository
	userRepo   *repository.UserRepository
}

func NewJobService(jobRepo *repository.JobRepository, clientRepo *repository.ClientRepository, userRepo *repository.UserRepository) *JobService {
	return &JobService{
		jobRepo:    jobRepo,
		clientRepo: clientRepo,
		userRepo:   userRepo,
	}
}

// Create validates references and creates a new job
func (s *JobService) Create(job *models.Job) (*models.Job, error) {
	client, err := s.clientRepo.GetByID(job.ClientID)
	if err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}
	// Jobs are always filed under the client's branch
	job.BranchID = client.BranchID

	if _, err := s.userRepo.GetByID(job.TechID); err != nil {
		return nil, fmt.Errorf("technician not found: %w", err)
	}

	if job.Status == "" {
		job.Status = models.JobStatusPending
	}
	if !validJobStatuses[job.Status] {
		return nil, ErrInvalidJobStatus
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetByID fetches a job with its items and payments
func (s *JobService) GetByID(id string) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// GetByBranch returns a paginated job listing, optionally filtered by status
func (s *JobService) GetByBranch(branchID, status string, page, pageSize int) ([]models.Job, int64, error) {
	if status != "" && !validJobStatuses[status] {
		return nil, 0, ErrInvalidJobStatus
	}
	return s.jobRepo.GetByBranch(branchID, status, page, pageSize)
}

// GetByClient returns all jobs for a client
func (s *JobService) GetByClient(clientID string) ([]models.Job, error) {
	return s.jobRepo.GetByClient(clientID)
}

// GetByTech returns all jobs assigned to a technician
func (s *JobService) GetByTech(techID string) ([]models.Job, error) {
	return s.jobRepo.GetByTech(techID)
}

// UpdateStatus moves a job to a new status
func (s *JobService) UpdateStatus(id, status string) (*models.Job, error) {
	if !validJobStatuses[status] {
		return nil, ErrInvalidJobStatus
	}

	if _, err := s.jobRepo.GetByID(id); err != nil {
		return nil, ErrJobNotFound
	}

	if err := s.jobRepo.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	return s.jobRepo.GetByID(id)
}

// Update modifies job fields other than the number and status
func (s *JobService) Update(id string, updates *models.Job) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(id)
	if err != nil {
		return nil, ErrJobNotFound
	}

	if updates.TechID != "" && updates.TechID != job.TechID {
		if _, err := s.userRepo.GetByID(updates.TechID); err != nil {
			return nil, fmt.Errorf("technician not found: %w", err)
		}
		job.TechID = updates.TechID
	}
	if updates.Description != "" {
		job.Description = updates.Description
	}
	if updates.StartTime != nil {
		job.StartTime = updates.StartTime
	}
	if updates.EndTime != nil {
		job.EndTime = updates.EndTime
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// Delete removes a job along with its items and payments
func (s *JobService) Delete(id string) error {
	if _, err := s.jobRepo.GetByID(id); err != nil {
		return ErrJobNotFound
	}
	return s.jobRepo.Delete(id)
}
