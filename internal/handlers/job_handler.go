package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services"
	"github.com/sndservices/snd-crm-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateJobRequest is the payload for creating a job
type CreateJobRequest struct {
	ClientID    string     `json:"client_id" binding:"required"`
	TechID      string     `json:"tech_id" binding:"required"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

// UpdateJobStatusRequest is the payload for a status transition
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create godoc
// @Summary Create a job
// @Description Create a new job; the job number is assigned globally
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateJobRequest true "Job data"
// @Success 201 {object} models.Job
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	job := &models.Job{
		ClientID:    req.ClientID,
		TechID:      req.TechID,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}

	created, err := h.jobService.Create(job)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create job", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get a job
// @Description Get a job by ID with its items and payments
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.Job
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// List godoc
// @Summary List jobs of a branch
// @Description Paginated job listing, optionally filtered by status
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param branch_id query string true "Branch ID"
// @Param status query string false "Job status filter"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	branchID := c.Query("branch_id")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id is required"})
		return
	}

	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	jobs, total, err := h.jobService.GetByBranch(branchID, c.Query("status"), page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrInvalidJobStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       jobs,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// ListByClient godoc
// @Summary List jobs of a client
// @Description All jobs filed for a client
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {array} models.Job
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/clients/{id}/jobs [get]
func (h *JobHandler) ListByClient(c *gin.Context) {
	jobs, err := h.jobService.GetByClient(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Update godoc
// @Summary Update a job
// @Description Update job fields other than number and status
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body models.Job true "Fields to update"
// @Success 200 {object} models.Job
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	var updates models.Job
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	job, err := h.jobService.Update(c.Param("id"), &updates)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update job", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateStatus godoc
// @Summary Update job status
// @Description Move a job to a new status
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body UpdateJobStatusRequest true "New status"
// @Success 200 {object} models.Job
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/jobs/{id}/status [put]
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	job, err := h.jobService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, services.ErrInvalidJobStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job status", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, job)
}

// Delete godoc
// @Summary Delete a job
// @Description Delete a job with its items and payments
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
