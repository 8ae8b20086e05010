package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/domain/repositories"
	"growfin.backend/pkg/clock"
	"growfin.backend/pkg/crypto"
	"growfin.backend/pkg/jwt"
	"growfin.backend/pkg/logger"
)

// LoginResult bundles the issued tokens with the authenticated identity.
type LoginResult struct {
	Tokens *jwt.TokenPair `json:"tokens"`
	UserID uuid.UUID      `json:"userId"`
	Role   string         `json:"role"`
	Name   string         `json:"name"`
}

// AuthUsecase handles login and user administration.
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	clk        clock.Clock
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService, clk clock.Clock) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		clk:        clk,
	}
}

// Login verifies credentials and issues a token pair. A missing user and a
// wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*LoginResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil || user == nil || !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("Invalid credentials")
	}
	if !user.IsActive {
		return nil, domainerrors.Unauthorized("Account is disabled")
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResult{
		Tokens: tokens,
		UserID: user.ID,
		Role:   string(user.Role),
		Name:   user.Name,
	}, nil
}

// Me returns the authenticated user's record.
func (u *AuthUsecase) Me(ctx context.Context, actor entities.Actor) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, actor.UserID)
}

// CreateUser provisions a back-office or customer login.
func (u *AuthUsecase) CreateUser(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	if !entities.ValidRole(input.Role) {
		return nil, domainerrors.BadRequest("Invalid role")
	}
	if existing, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domainerrors.Conflict("User already exists")
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := u.clk.Now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         entities.UserRole(input.Role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns users, optionally filtered by role.
func (u *AuthUsecase) ListUsers(ctx context.Context, role string) ([]*entities.User, error) {
	if role != "" && !entities.ValidRole(role) {
		return nil, domainerrors.BadRequest("Invalid role")
	}
	return u.userRepo.List(ctx, role)
}
