package handlers

import (
	"errors"
	"net/http"

	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type FranchiseeHandler struct {
	franchiseeService *services.FranchiseeService
}

func NewFranchiseeHandler(franchiseeService *services.FranchiseeService) *FranchiseeHandler {
	return &FranchiseeHandler{franchiseeService: franchiseeService}
}

// CreateFranchiseeRequest is the payload for creating a franchisee
type CreateFranchiseeRequest struct {
	OrganizationID string `json:"organization_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
}

// Create godoc
// @Summary Create a franchisee
// @Description Create a new franchisee under an organization
// @Tags franchisees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFranchiseeRequest true "Franchisee data"
// @Success 201 {object} models.Franchisee
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/franchisees [post]
func (h *FranchiseeHandler) Create(c *gin.Context) {
	var req CreateFranchiseeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	franchisee := &models.Franchisee{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
	}

	created, err := h.franchiseeService.Create(franchisee)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create franchisee", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get a franchisee
// @Tags franchisees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Franchisee ID"
// @Success 200 {object} models.Franchisee
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/franchisees/{id} [get]
func (h *FranchiseeHandler) Get(c *gin.Context) {
	franchisee, err := h.franchiseeService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchisee not found"})
		return
	}
	c.JSON(http.StatusOK, franchisee)
}

// ListByOrganization godoc
// @Summary List franchisees of an organization
// @Tags franchisees
// @Produce json
// @Security BearerAuth
// @Param org_id path string true "Organization ID"
// @Success 200 {array} models.Franchisee
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/organizations/{org_id}/franchisees [get]
func (h *FranchiseeHandler) ListByOrganization(c *gin.Context) {
	franchisees, err := h.franchiseeService.GetByOrganization(c.Param("org_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list franchisees", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, franchisees)
}

// Update godoc
// @Summary Update a franchisee
// @Tags franchisees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Franchisee ID"
// @Param request body models.Franchisee true "Fields to update"
// @Success 200 {object} models.Franchisee
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/franchisees/{id} [put]
func (h *FranchiseeHandler) Update(c *gin.Context) {
	var updates models.Franchisee
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	franchisee, err := h.franchiseeService.Update(c.Param("id"), &updates)
	if err != nil {
		if errors.Is(err, services.ErrFranchiseeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Franchisee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update franchisee", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, franchisee)
}

// Delete godoc
// @Summary Delete a franchisee
// @Tags franchisees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Franchisee ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/franchisees/{id} [delete]
func (h *FranchiseeHandler) Delete(c *gin.Context) {
	if err := h.franchiseeService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrFranchiseeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Franchisee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete franchisee", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Franchisee deleted successfully"})
}
