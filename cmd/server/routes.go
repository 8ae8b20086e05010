package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"growfin.backend/internal/interfaces/http/handlers"
	"growfin.backend/internal/interfaces/http/middleware"
	"growfin.backend/pkg/jwt"
)

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	leadHandler        *handlers.LeadHandler
	customerHandler    *handlers.CustomerHandler
	applicationHandler *handlers.ApplicationHandler
	loanHandler        *handlers.LoanHandler
	jwtService         *jwt.JWTService
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	auth := middleware.AuthMiddleware(d.jwtService)
	staffOrAdmin := middleware.RequireStaffOrAdmin()
	adminOnly := middleware.RequireAdmin()

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public login, protected identity)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", d.authHandler.Login)
			authGroup.GET("/me", auth, d.authHandler.Me)
		}

		// Lead routes. Intake is public; the rest is back-office.
		leads := v1.Group("/leads")
		{
			leads.POST("", d.leadHandler.Create)
			leads.GET("", auth, staffOrAdmin, d.leadHandler.List)
			leads.PATCH("/:id/status", auth, staffOrAdmin, d.leadHandler.UpdateStatus)
			leads.POST("/:id/convert-to-customer", auth, staffOrAdmin, d.leadHandler.ConvertToCustomer)
		}

		// Customer management (back-office)
		customers := v1.Group("/customers")
		customers.Use(auth, staffOrAdmin)
		{
			customers.GET("", d.customerHandler.List)
			customers.GET("/:id", d.customerHandler.Get)
			customers.POST("/:id/kyc-uploaded", d.customerHandler.MarkKYCUploaded())
			customers.POST("/:id/kyc-under-review", d.customerHandler.MarkKYCUnderReview())
			customers.POST("/:id/kyc-approve", d.customerHandler.ApproveKYC())
			customers.POST("/:id/kyc-reject", d.customerHandler.RejectKYC())
			customers.POST("/:id/mark-eligible", d.customerHandler.MarkEligible())
			customers.POST("/:id/mark-not-eligible", d.customerHandler.MarkNotEligible())
		}

		// Loan applications (customer self-service and back-office review)
		applications := v1.Group("/loan-applications")
		applications.Use(auth)
		{
			applications.POST("", d.applicationHandler.Create)
			applications.GET("", d.applicationHandler.List)
			applications.GET("/:id", d.applicationHandler.Get)
			applications.PUT("/:id", d.applicationHandler.Update)
			applications.POST("/:id/submit", middleware.IdempotencyMiddleware(), d.applicationHandler.Submit)
			applications.POST("/:id/documents", d.applicationHandler.UploadDocument)
			applications.POST("/:id/staff-approve", staffOrAdmin, d.applicationHandler.StaffApprove)
			applications.POST("/:id/approve", staffOrAdmin, d.applicationHandler.Approve)
			applications.POST("/:id/reject", staffOrAdmin, d.applicationHandler.Reject)
		}

		// Loan reads shared by roles
		loans := v1.Group("/loans")
		loans.Use(auth)
		{
			loans.GET("/:id", d.loanHandler.Get)
		}

		// Customer self-service
		customer := v1.Group("/customer")
		customer.Use(auth, middleware.RequireRole("customer"))
		{
			customer.GET("/me", d.customerHandler.Me)
			customer.GET("/loans", d.loanHandler.MyLoans)
			customer.GET("/loans/:id/payments", d.loanHandler.MyLoanPayments)
		}

		// Staff collection operations
		staff := v1.Group("/staff")
		staff.Use(auth, staffOrAdmin)
		{
			staff.POST("/payments", middleware.IdempotencyMiddleware(), d.loanHandler.RecordPayment)
			staff.GET("/today-collections", d.loanHandler.TodayCollections)
			staff.GET("/loans/arrears", d.loanHandler.LoansInArrears)
		}

		// Admin operations
		admin := v1.Group("/admin")
		admin.Use(auth, adminOnly)
		{
			admin.POST("/users", d.authHandler.CreateUser)
			admin.GET("/users", d.authHandler.ListUsers)
			admin.POST("/customers", d.customerHandler.Create)
			admin.POST("/loans", d.loanHandler.Create)
			admin.GET("/loans", d.loanHandler.List)
			admin.GET("/dashboard", d.loanHandler.Dashboard)
			admin.GET("/documents/repository", d.applicationHandler.ListAllDocuments)
		}
	}
}
