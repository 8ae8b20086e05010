package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	domainRepos "growfin.backend/internal/domain/repositories"
	"growfin.backend/internal/interfaces/http/middleware"
	"growfin.backend/internal/interfaces/http/response"
	"growfin.backend/internal/usecases"
)

// LoanHandler handles loan and collection endpoints
type LoanHandler struct {
	loanUsecase *usecases.LoanUsecase
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanUsecase *usecases.LoanUsecase) *LoanHandler {
	return &LoanHandler{
		loanUsecase: loanUsecase,
	}
}

func (h *LoanHandler) actor(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
	}
	return actor, ok
}

// Create disburses a loan
// POST /api/v1/admin/loans
func (h *LoanHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input entities.CreateLoanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	loan, err := h.loanUsecase.Create(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Loan created",
		"loanId":  loan.ID,
		"loan":    loan,
	})
}

// List lists loans with derived figures
// GET /api/v1/admin/loans
func (h *LoanHandler) List(c *gin.Context) {
	filter := domainRepos.LoanFilter{
		Status: c.Query("status"),
	}
	if cid := c.Query("customer_id"); cid != "" {
		if id, err := uuid.Parse(cid); err == nil {
			filter.CustomerID = &id
		}
	}

	views, err := h.loanUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, views)
}

// Get returns one loan with derived figures
// GET /api/v1/loans/:id
func (h *LoanHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid loan id"))
		return
	}

	view, err := h.loanUsecase.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// RecordPayment records a collection
// POST /api/v1/staff/payments
func (h *LoanHandler) RecordPayment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input entities.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.loanUsecase.RecordPayment(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":   "Payment recorded",
		"paymentId": payment.ID,
	})
}

// TodayCollections lists payments collected today
// GET /api/v1/staff/today-collections
func (h *LoanHandler) TodayCollections(c *gin.Context) {
	payments, err := h.loanUsecase.TodayCollections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}

// LoansInArrears reports loans behind schedule
// GET /api/v1/staff/loans/arrears
func (h *LoanHandler) LoansInArrears(c *gin.Context) {
	entries, err := h.loanUsecase.LoansInArrears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries)
}

// MyLoans returns the acting customer's loan book
// GET /api/v1/customer/loans
func (h *LoanHandler) MyLoans(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	summary, views, err := h.loanUsecase.MyLoans(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"summary": summary,
		"loans":   views,
	})
}

// MyLoanPayments returns one of the acting customer's loans with payments
// GET /api/v1/customer/loans/:id/payments
func (h *LoanHandler) MyLoanPayments(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid loan id"))
		return
	}

	view, payments, err := h.loanUsecase.MyLoanPayments(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"loan":     view,
		"payments": payments,
	})
}

// Dashboard returns the back-office overview
// GET /api/v1/admin/dashboard
func (h *LoanHandler) Dashboard(c *gin.Context) {
	stats, err := h.loanUsecase.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
