package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/interfaces/http/response"
	"growfin.backend/internal/usecases"
)

// LeadHandler handles lead intake and pipeline endpoints
type LeadHandler struct {
	leadUsecase *usecases.LeadUsecase
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadUsecase *usecases.LeadUsecase) *LeadHandler {
	return &LeadHandler{
		leadUsecase: leadUsecase,
	}
}

// Create captures a lead. This is the one unauthenticated write endpoint;
// it backs the public enquiry form.
// POST /api/v1/leads
func (h *LeadHandler) Create(c *gin.Context) {
	var input entities.CreateLeadInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Mobile is required"))
		return
	}

	lead, err := h.leadUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, lead)
}

// List lists leads
// GET /api/v1/leads
func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.leadUsecase.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, leads)
}

// UpdateStatus moves a lead along the pipeline
// PATCH /api/v1/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid lead id"))
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	lead, err := h.leadUsecase.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// ConvertToCustomer converts a lead into a customer
// POST /api/v1/leads/:id/convert-to-customer
func (h *LeadHandler) ConvertToCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid lead id"))
		return
	}

	result, err := h.leadUsecase.ConvertToCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	body := gin.H{
		"customer": result.Customer,
		"lead":     result.Lead,
	}
	if result.AlreadyConverted {
		body["message"] = "Lead already converted"
	}
	response.Success(c, http.StatusOK, body)
}
