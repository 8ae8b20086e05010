package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/interfaces/http/middleware"
	"growfin.backend/internal/interfaces/http/response"
	"growfin.backend/internal/usecases"
)

// CustomerHandler handles customer, KYC and eligibility endpoints
type CustomerHandler struct {
	customerUsecase *usecases.CustomerUsecase
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerUsecase *usecases.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{
		customerUsecase: customerUsecase,
	}
}

// List lists customers
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter := entities.CustomerFilter{
		KYCStatus:         c.Query("kyc_status"),
		EligibilityStatus: c.Query("eligibility_status"),
	}

	customers, err := h.customerUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, customers)
}

// Get returns one customer
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid customer id"))
		return
	}

	customer, err := h.customerUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// Me returns the acting user's customer profile
// GET /api/v1/customer/me
func (h *CustomerHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	customer, err := h.customerUsecase.Me(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// Create onboards a customer directly
// POST /api/v1/admin/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var input entities.CreateCustomerInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, err := h.customerUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, customer)
}

// kycTransition builds a handler setting one KYC status.
func (h *CustomerHandler) kycTransition(status entities.KYCStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid customer id"))
			return
		}

		customer, err := h.customerUsecase.SetKYCStatus(c.Request.Context(), id, status)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, http.StatusOK, customer)
	}
}

// MarkKYCUploaded handles POST /api/v1/customers/:id/kyc-uploaded
func (h *CustomerHandler) MarkKYCUploaded() gin.HandlerFunc {
	return h.kycTransition(entities.KYCStatusUploaded)
}

// MarkKYCUnderReview handles POST /api/v1/customers/:id/kyc-under-review
func (h *CustomerHandler) MarkKYCUnderReview() gin.HandlerFunc {
	return h.kycTransition(entities.KYCStatusUnderReview)
}

// ApproveKYC handles POST /api/v1/customers/:id/kyc-approve
func (h *CustomerHandler) ApproveKYC() gin.HandlerFunc {
	return h.kycTransition(entities.KYCStatusApproved)
}

// RejectKYC handles POST /api/v1/customers/:id/kyc-reject
func (h *CustomerHandler) RejectKYC() gin.HandlerFunc {
	return h.kycTransition(entities.KYCStatusRejected)
}

// eligibilityTransition builds a handler setting the eligibility decision.
func (h *CustomerHandler) eligibilityTransition(status entities.EligibilityStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid customer id"))
			return
		}

		customer, err := h.customerUsecase.SetEligibility(c.Request.Context(), id, status)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, http.StatusOK, customer)
	}
}

// MarkEligible handles POST /api/v1/customers/:id/mark-eligible
func (h *CustomerHandler) MarkEligible() gin.HandlerFunc {
	return h.eligibilityTransition(entities.EligibilityEligible)
}

// MarkNotEligible handles POST /api/v1/customers/:id/mark-not-eligible
func (h *CustomerHandler) MarkNotEligible() gin.HandlerFunc {
	return h.eligibilityTransition(entities.EligibilityNotEligible)
}
