package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"growfin.backend/internal/domain/entities"
	"growfin.backend/internal/domain/repositories"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role string) ([]*entities.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// Mock LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entities.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, status string) ([]*entities.Lead, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entities.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// Mock CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context, filter entities.CustomerFilter) ([]*entities.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *entities.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// Mock LoanApplicationRepository
type MockLoanApplicationRepository struct {
	mock.Mock
}

func (m *MockLoanApplicationRepository) Create(ctx context.Context, app *entities.LoanApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockLoanApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoanApplication), args.Error(1)
}

func (m *MockLoanApplicationRepository) List(ctx context.Context, filter entities.ApplicationFilter) ([]*entities.LoanApplication, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanApplication), args.Error(1)
}

func (m *MockLoanApplicationRepository) Update(ctx context.Context, app *entities.LoanApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockLoanApplicationRepository) AddDocument(ctx context.Context, doc *entities.LoanApplicationDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockLoanApplicationRepository) ListDocuments(ctx context.Context) ([]*entities.LoanApplicationDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanApplicationDocument), args.Error(1)
}

// Mock LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *entities.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *MockLoanRepository) List(ctx context.Context, filter repositories.LoanFilter) ([]*entities.Loan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Loan), args.Error(1)
}

// Mock PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByCollectionDate(ctx context.Context, day time.Time) ([]*entities.Payment, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Payment), args.Error(1)
}

// Mock SequenceRepository
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextCustomerCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceRepository) NextApplicationNumber(ctx context.Context, day time.Time) (string, error) {
	args := m.Called(ctx, day)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceRepository) NextLoanNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Mock DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Save(ctx context.Context, ownerID, documentType, filename, contentType string, content []byte) (string, error) {
	args := m.Called(ctx, ownerID, documentType, filename, contentType, content)
	return args.String(0), args.Error(1)
}
