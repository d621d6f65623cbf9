package middleware

import (
	"net/http"

	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// OwnerMiddleware guards organization administration routes: the caller must
// hold an active Organization Owner role in the organization addressed by the
// route.
type OwnerMiddleware struct {
	roleRepo *repository.RoleRepository
}

func NewOwnerMiddleware(roleRepo *repository.RoleRepository) *OwnerMiddleware {
	return &OwnerMiddleware{roleRepo: roleRepo}
}

// RequireOrganizationOwner checks the caller's role in the organization named
// by the :org_id route parameter. Must run after RequireAuth.
func (m *OwnerMiddleware) RequireOrganizationOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			c.Abort()
			return
		}

		organizationID := c.Param("org_id")
		if organizationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Organization ID is required"})
			c.Abort()
			return
		}

		hasRole, err := m.roleRepo.UserHasRole(userID.(string), organizationID, models.RoleOrganizationOwner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			c.Abort()
			return
		}
		if !hasRole {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Organization Owner role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
