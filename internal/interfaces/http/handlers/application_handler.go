package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/interfaces/http/middleware"
	"growfin.backend/internal/interfaces/http/response"
	"growfin.backend/internal/usecases"
)

// ApplicationHandler handles loan application endpoints
type ApplicationHandler struct {
	appUsecase *usecases.ApplicationUsecase
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appUsecase *usecases.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{
		appUsecase: appUsecase,
	}
}

func (h *ApplicationHandler) actor(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
	}
	return actor, ok
}

// Create opens a draft application
// POST /api/v1/loan-applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var payload entities.ApplicationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	var explicitCustomerID *uuid.UUID
	if raw, present := payload["customer_id"]; present {
		if s, isStr := raw.(string); isStr {
			if id, err := uuid.Parse(s); err == nil {
				explicitCustomerID = &id
			}
		}
	}

	app, err := h.appUsecase.Create(c.Request.Context(), actor, explicitCustomerID, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, app)
}

// List lists applications visible to the actor
// GET /api/v1/loan-applications
func (h *ApplicationHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	scope := entities.ScopeOwn
	if actor.IsStaffOrAdmin() {
		scope = entities.ScopeAll
	}

	filter := entities.ApplicationFilter{
		Status:   c.Query("status"),
		LoanType: c.Query("loan_type"),
	}
	if cid := c.Query("customer_id"); cid != "" && scope == entities.ScopeAll {
		if id, err := uuid.Parse(cid); err == nil {
			filter.CustomerID = &id
		}
	}

	apps, err := h.appUsecase.List(c.Request.Context(), actor, scope, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, apps)
}

// Get returns one application
// GET /api/v1/loan-applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid application id"))
		return
	}

	app, err := h.appUsecase.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// Update edits a draft or submitted application
// PUT /api/v1/loan-applications/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid application id"))
		return
	}

	var payload entities.ApplicationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	app, err := h.appUsecase.Update(c.Request.Context(), actor, id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// Submit submits an application for review
// POST /api/v1/loan-applications/:id/submit
func (h *ApplicationHandler) Submit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid application id"))
		return
	}

	// the submit body is optional; it may carry final field corrections
	payload := entities.ApplicationPayload{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	app, err := h.appUsecase.Submit(c.Request.Context(), actor, id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// StaffApprove records the first-tier review
// POST /api/v1/loan-applications/:id/staff-approve
func (h *ApplicationHandler) StaffApprove(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid application id"))
		return
	}

	var input entities.StaffReviewInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	app, err := h.appUsecase.StaffApprove(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// Approve finalizes the decision
// POST /api/v1/loan-applications/:id/approve
func (h *ApplicationHandler) Approve(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid application id"))
		return
	}

	var input entities.ApproveApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	app, err := h.appUsecase.Approve(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// Reject closes the application
// POST /api/v1/loan-applications/:id/reject
func (h *ApplicationHandler) Reject(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid application id"))
		return
	}

	var input entities.RejectApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	app, err := h.appUsecase.Reject(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// ListAllDocuments returns the whole document repository
// GET /api/v1/admin/documents/repository
func (h *ApplicationHandler) ListAllDocuments(c *gin.Context) {
	docs, err := h.appUsecase.ListAllDocuments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, docs)
}

// UploadDocument attaches a document to an application
// POST /api/v1/loan-applications/:id/documents
func (h *ApplicationHandler) UploadDocument(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid application id"))
		return
	}

	documentType := c.PostForm("document_type")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.NewValidationError("document_type and file are required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Unable to read file"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Unable to read file"))
		return
	}

	doc, err := h.appUsecase.UploadDocument(c.Request.Context(), actor, id, documentType,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, doc)
}
