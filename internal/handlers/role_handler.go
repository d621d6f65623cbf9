package handlers

import (
	"errors"
	"net/http"

	"github.com/sndservices/snd-crm-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService *services.RoleService
}

func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// AssignRoleRequest is the payload for granting a role
type AssignRoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// List godoc
// @Summary List role definitions
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Role
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list roles", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, roles)
}

// Assign godoc
// @Summary Assign a role
// @Description Grant a named role to a user within an organization
// @Description (Organization Owner role required)
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param org_id path string true "Organization ID"
// @Param request body AssignRoleRequest true "Role assignment"
// @Success 201 {object} models.UserOrganizationRole
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/organizations/{org_id}/roles [post]
func (h *RoleHandler) Assign(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	assignment, err := h.roleService.AssignRole(req.UserID, c.Param("org_id"), req.Role)
	if err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to assign role", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// UserRoles godoc
// @Summary List roles of the current user
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserOrganizationRole
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/roles/me [get]
func (h *RoleHandler) UserRoles(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	assignments, err := h.roleService.GetUserRoles(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list user roles", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assignments)
}
