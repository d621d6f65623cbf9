package handlers

import (
	"errors"
	"net/http"

	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	organizationService *services.OrganizationService
}

func NewOrganizationHandler(organizationService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationService: organizationService}
}

// CreateOrganizationRequest is the payload for creating an organization
type CreateOrganizationRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// Create godoc
// @Summary Create an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrganizationRequest true "Organization data"
// @Success 201 {object} models.Organization
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	organization := &models.Organization{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	created, err := h.organizationService.Create(organization)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get an organization
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param org_id path string true "Organization ID"
// @Success 200 {object} models.Organization
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/organizations/{org_id} [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	organization, err := h.organizationService.GetByID(c.Param("org_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	c.JSON(http.StatusOK, organization)
}

// List godoc
// @Summary List organizations
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Organization
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	organizations, err := h.organizationService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organizations", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, organizations)
}

// Update godoc
// @Summary Update an organization
// @Description Organization Owner role required
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param org_id path string true "Organization ID"
// @Param request body models.Organization true "Fields to update"
// @Success 200 {object} models.Organization
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/organizations/{org_id} [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	var updates models.Organization
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	organization, err := h.organizationService.Update(c.Param("org_id"), &updates)
	if err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update organization", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, organization)
}

// Delete godoc
// @Summary Delete an organization
// @Description Organization Owner role required
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param org_id path string true "Organization ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/organizations/{org_id} [delete]
func (h *OrganizationHandler) Delete(c *gin.Context) {
	if err := h.organizationService.Delete(c.Param("org_id")); err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete organization", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Organization deleted successfully"})
}
