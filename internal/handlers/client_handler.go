package handlers

import (
	"errors"
	"net/http"

	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services"
	"github.com/sndservices/snd-crm-backend/internal/services/excel"
	"github.com/sndservices/snd-crm-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService *services.ClientService
	excelService  *excel.Service
}

func NewClientHandler(clientService *services.ClientService, excelService *excel.Service) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		excelService:  excelService,
	}
}

// CreateClientRequest is the payload for creating a client
type CreateClientRequest struct {
	BranchID     string `json:"branch_id" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"required"`
	AltPhone     string `json:"alt_phone"`
	CompanyName  string `json:"company_name"`
	AdSource     string `json:"ad_source"`
	AllowBilling bool   `json:"allow_billing"`
	TaxExempt    bool   `json:"tax_exempt"`
}

// Create godoc
// @Summary Create a client
// @Description Create a new client; the client number is assigned per branch
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateClientRequest true "Client data"
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	client := &models.Client{
		BranchID:     req.BranchID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		AltPhone:     req.AltPhone,
		CompanyName:  req.CompanyName,
		AdSource:     req.AdSource,
		AllowBilling: req.AllowBilling,
		TaxExempt:    req.TaxExempt,
	}

	created, err := h.clientService.Create(c.Request.Context(), client)
	if err != nil {
		if errors.Is(err, services.ErrPhoneExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get a client
// @Description Get a client by ID
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.clientService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

// List godoc
// @Summary List clients of a branch
// @Description Paginated client listing with optional name/phone search
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param branch_id query string true "Branch ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search by name or phone"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	branchID := c.Query("branch_id")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id is required"})
		return
	}

	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	search := c.Query("search")

	clients, total, err := h.clientService.GetByBranch(branchID, page, pageSize, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       clients,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// Update godoc
// @Summary Update a client
// @Description Update client fields
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body models.Client true "Fields to update"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	var updates models.Client
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), c.Param("id"), &updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		case errors.Is(err, services.ErrPhoneExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// Delete godoc
// @Summary Delete a client
// @Description Delete a client by ID
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clientService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// Export godoc
// @Summary Export clients to Excel
// @Description Export every client of a branch to an Excel file
// @Tags clients
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param branch_id query string true "Branch ID"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/clients/export [get]
func (h *ClientHandler) Export(c *gin.Context) {
	branchID := c.Query("branch_id")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id is required"})
		return
	}

	result, err := h.excelService.ExportClientsToExcel(branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export clients", "details": err.Error()})
		return
	}

	c.FileAttachment(result.FilePath, result.Filename)
}
