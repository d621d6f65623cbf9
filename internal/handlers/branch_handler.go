package handlers

import (
	"errors"
	"net/http"

	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchService *services.BranchService
}

func NewBranchHandler(branchService *services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// CreateBranchRequest is the payload for creating a branch
type CreateBranchRequest struct {
	FranchiseeID string `json:"franchisee_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	Type         string `json:"type"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
}

// Create godoc
// @Summary Create a branch
// @Description Create a new branch under a franchisee
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBranchRequest true "Branch data"
// @Success 201 {object} models.Branch
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	branch := &models.Branch{
		FranchiseeID: req.FranchiseeID,
		Name:         req.Name,
		Code:         req.Code,
		Type:         req.Type,
		Phone:        req.Phone,
		Email:        req.Email,
	}

	created, err := h.branchService.Create(branch)
	if err != nil {
		if errors.Is(err, services.ErrBranchCodeExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create branch", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get a branch
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Success 200 {object} models.Branch
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/branches/{id} [get]
func (h *BranchHandler) Get(c *gin.Context) {
	branch, err := h.branchService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}
	c.JSON(http.StatusOK, branch)
}

// ListByFranchisee godoc
// @Summary List branches of a franchisee
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Franchisee ID"
// @Success 200 {array} models.Branch
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/franchisees/{id}/branches [get]
func (h *BranchHandler) ListByFranchisee(c *gin.Context) {
	branches, err := h.branchService.GetByFranchisee(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list branches", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, branches)
}

// Update godoc
// @Summary Update a branch
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Param request body models.Branch true "Fields to update"
// @Success 200 {object} models.Branch
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	var updates models.Branch
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	branch, err := h.branchService.Update(c.Param("id"), &updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBranchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		case errors.Is(err, services.ErrBranchCodeExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update branch", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, branch)
}

// Delete godoc
// @Summary Delete a branch
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/branches/{id} [delete]
func (h *BranchHandler) Delete(c *gin.Context) {
	if err := h.branchService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete branch", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted successfully"})
}
