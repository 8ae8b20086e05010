package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Role:         string(user.Role),
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "users.email")
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists users, optionally filtered by role
func (r *UserRepository) List(ctx context.Context, role string) ([]*entities.User, error) {
	var ms []models.User
	db := GetDB(ctx, r.db).WithContext(ctx)
	if role != "" {
		db = db.Where("role = ?", role)
	}
	if err := db.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, r.toEntity(&ms[i]))
	}
	return users, nil
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         entities.UserRole(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
