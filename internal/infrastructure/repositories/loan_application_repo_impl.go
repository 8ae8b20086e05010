package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/infrastructure/models"
)

// LoanApplicationRepository implements loan application data operations
type LoanApplicationRepository struct {
	db *gorm.DB
}

// NewLoanApplicationRepository creates a new loan application repository
func NewLoanApplicationRepository(db *gorm.DB) *LoanApplicationRepository {
	return &LoanApplicationRepository{db: db}
}

// Create creates a new loan application
func (r *LoanApplicationRepository) Create(ctx context.Context, app *entities.LoanApplication) error {
	m, err := r.toModel(app)
	if err != nil {
		return err
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "loan_applications.application_number")
	}
	return nil
}

// GetByID gets a loan application by ID with its documents
func (r *LoanApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanApplication, error) {
	var m models.LoanApplication
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Documents").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NotFound("Application not found")
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// List lists loan applications matching the filter, newest first
func (r *LoanApplicationRepository) List(ctx context.Context, filter entities.ApplicationFilter) ([]*entities.LoanApplication, error) {
	var ms []models.LoanApplication
	db := GetDB(ctx, r.db).WithContext(ctx).Preload("Documents")
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.LoanType != "" {
		db = db.Where("loan_type = ?", filter.LoanType)
	}
	if filter.Since != nil {
		db = db.Where("created_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		db = db.Where("created_at < ?", *filter.Until)
	}
	if err := db.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	apps := make([]*entities.LoanApplication, 0, len(ms))
	for i := range ms {
		app, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Update updates a loan application
func (r *LoanApplicationRepository) Update(ctx context.Context, app *entities.LoanApplication) error {
	m, err := r.toModel(app)
	if err != nil {
		return err
	}
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.LoanApplication{}).Where("id = ?", app.ID).Updates(map[string]interface{}{
		"loan_type":            m.LoanType,
		"status":               m.Status,
		"applied_amount":       m.AppliedAmount,
		"tenure_months":        m.TenureMonths,
		"interest_rate":        m.InterestRate,
		"approved_amount":      m.ApprovedAmount,
		"approved_tenure":      m.ApprovedTenure,
		"review_notes":         m.ReviewNotes,
		"reject_reason":        m.RejectReason,
		"full_name":            m.FullName,
		"nic_number":           m.NICNumber,
		"mobile_number":        m.MobileNumber,
		"email":                m.Email,
		"address_line1":        m.AddressLine1,
		"address_line2":        m.AddressLine2,
		"city":                 m.City,
		"district":             m.District,
		"province":             m.Province,
		"date_of_birth":        m.DateOfBirth,
		"monthly_income":       m.MonthlyIncome,
		"monthly_expenses":     m.MonthlyExpenses,
		"has_existing_loans":   m.HasExistingLoans,
		"existing_loan_info":   m.ExistingLoanInfo,
		"extra_data":           m.ExtraData,
		"submitted_at":         m.SubmittedAt,
		"staff_approved_at":    m.StaffApprovedAt,
		"staff_approved_by_id": m.StaffApprovedByID,
		"approved_at":          m.ApprovedAt,
		"updated_at":           m.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.NotFound("Application not found")
	}
	return nil
}

// AddDocument attaches a document record to an application
func (r *LoanApplicationRepository) AddDocument(ctx context.Context, doc *entities.LoanApplicationDocument) error {
	m := &models.LoanApplicationDocument{
		ID:                doc.ID,
		LoanApplicationID: doc.LoanApplicationID,
		DocumentType:      doc.DocumentType,
		FilePath:          doc.FilePath,
		UploadedAt:        doc.UploadedAt,
	}
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// ListDocuments lists every uploaded document, newest first
func (r *LoanApplicationRepository) ListDocuments(ctx context.Context) ([]*entities.LoanApplicationDocument, error) {
	var ms []models.LoanApplicationDocument
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Order("uploaded_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	docs := make([]*entities.LoanApplicationDocument, 0, len(ms))
	for i := range ms {
		docs = append(docs, &entities.LoanApplicationDocument{
			ID:                ms[i].ID,
			LoanApplicationID: ms[i].LoanApplicationID,
			DocumentType:      ms[i].DocumentType,
			FilePath:          ms[i].FilePath,
			UploadedAt:        ms[i].UploadedAt,
		})
	}
	return docs, nil
}

func (r *LoanApplicationRepository) toModel(app *entities.LoanApplication) (*models.LoanApplication, error) {
	extra := app.ExtraData
	if extra == nil {
		extra = map[string]interface{}{}
	}
	extraJSON, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}

	return &models.LoanApplication{
		ID:                app.ID,
		ApplicationNumber: app.ApplicationNumber,
		CustomerID:        app.CustomerID,
		LoanType:          string(app.LoanType),
		Status:            string(app.Status),
		AppliedAmount:     app.AppliedAmount,
		TenureMonths:      app.TenureMonths,
		InterestRate:      app.InterestRate,
		ApprovedAmount:    app.ApprovedAmount,
		ApprovedTenure:    app.ApprovedTenure,
		ReviewNotes:       app.ReviewNotes.Ptr(),
		RejectReason:      app.RejectReason.Ptr(),
		FullName:          app.FullName.Ptr(),
		NICNumber:         app.NICNumber.Ptr(),
		MobileNumber:      app.MobileNumber.Ptr(),
		Email:             app.Email.Ptr(),
		AddressLine1:      app.AddressLine1.Ptr(),
		AddressLine2:      app.AddressLine2.Ptr(),
		City:              app.City.Ptr(),
		District:          app.District.Ptr(),
		Province:          app.Province.Ptr(),
		DateOfBirth:       app.DateOfBirth,
		MonthlyIncome:     app.MonthlyIncome,
		MonthlyExpenses:   app.MonthlyExpenses,
		HasExistingLoans:  app.HasExistingLoans,
		ExistingLoanInfo:  app.ExistingLoanInfo.Ptr(),
		ExtraData:         string(extraJSON),
		SubmittedAt:       app.SubmittedAt,
		StaffApprovedAt:   app.StaffApprovedAt,
		StaffApprovedByID: app.StaffApprovedByID,
		ApprovedAt:        app.ApprovedAt,
		CreatedByID:       app.CreatedByID,
		CreatedAt:         app.CreatedAt,
		UpdatedAt:         app.UpdatedAt,
	}, nil
}

func (r *LoanApplicationRepository) toEntity(m *models.LoanApplication) (*entities.LoanApplication, error) {
	extra := map[string]interface{}{}
	if m.ExtraData != "" {
		if err := json.Unmarshal([]byte(m.ExtraData), &extra); err != nil {
			return nil, err
		}
	}

	app := &entities.LoanApplication{
		ID:                m.ID,
		ApplicationNumber: m.ApplicationNumber,
		CustomerID:        m.CustomerID,
		LoanType:          entities.LoanType(m.LoanType),
		Status:            entities.ApplicationStatus(m.Status),
		AppliedAmount:     m.AppliedAmount,
		TenureMonths:      m.TenureMonths,
		InterestRate:      m.InterestRate,
		ApprovedAmount:    m.ApprovedAmount,
		ApprovedTenure:    m.ApprovedTenure,
		ReviewNotes:       null.StringFromPtr(m.ReviewNotes),
		RejectReason:      null.StringFromPtr(m.RejectReason),
		FullName:          null.StringFromPtr(m.FullName),
		NICNumber:         null.StringFromPtr(m.NICNumber),
		MobileNumber:      null.StringFromPtr(m.MobileNumber),
		Email:             null.StringFromPtr(m.Email),
		AddressLine1:      null.StringFromPtr(m.AddressLine1),
		AddressLine2:      null.StringFromPtr(m.AddressLine2),
		City:              null.StringFromPtr(m.City),
		District:          null.StringFromPtr(m.District),
		Province:          null.StringFromPtr(m.Province),
		DateOfBirth:       m.DateOfBirth,
		MonthlyIncome:     m.MonthlyIncome,
		MonthlyExpenses:   m.MonthlyExpenses,
		HasExistingLoans:  m.HasExistingLoans,
		ExistingLoanInfo:  null.StringFromPtr(m.ExistingLoanInfo),
		ExtraData:         extra,
		SubmittedAt:       m.SubmittedAt,
		StaffApprovedAt:   m.StaffApprovedAt,
		StaffApprovedByID: m.StaffApprovedByID,
		ApprovedAt:        m.ApprovedAt,
		CreatedByID:       m.CreatedByID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for _, d := range m.Documents {
		app.Documents = append(app.Documents, entities.LoanApplicationDocument{
			ID:                d.ID,
			LoanApplicationID: d.LoanApplicationID,
			DocumentType:      d.DocumentType,
			FilePath:          d.FilePath,
			UploadedAt:        d.UploadedAt,
		})
	}
	return app, nil
}
