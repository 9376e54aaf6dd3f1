// Package service contains the application business logic.
package service

import (
	"context"
	"errors"

	"taller-go/internal/model"
	"taller-go/internal/repository"
	"taller-go/pkg/hash"
	"taller-go/pkg/token"

	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService handles registration, login and tenant lookup.
type UserService interface {
	Register(ctx context.Context, username, password, companyName string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	Profile(ctx context.Context, userID uint) (*model.User, error)
	Company(ctx context.Context, companyID uint) (*model.Company, error)
	Refresh(ctx context.Context, refreshToken string) (newAccess, newRefresh string, err error)
}

type userService struct {
	users      repository.UserRepository
	jwtManager *token.JWTManager
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, jwtManager *token.JWTManager) UserService {
	return &userService{users: users, jwtManager: jwtManager}
}

// Register creates a company and its first (admin) user in one go.
func (s *userService) Register(ctx context.Context, username, password, companyName string) (*model.User, error) {
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	company := &model.Company{Name: companyName}
	if err := s.users.CreateCompany(ctx, company); err != nil {
		return nil, err
	}

	user := &model.User{
		CompanyID: company.ID,
		Username:  username,
		Password:  hashed,
		Role:      "ADMIN",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (string, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if !hash.CheckPassword(password, user.Password) {
		return "", "", ErrInvalidCredentials
	}

	access, err := s.jwtManager.GenerateToken(user.ID, user.CompanyID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID, user.CompanyID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *userService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *userService) Company(ctx context.Context, companyID uint) (*model.Company, error) {
	return s.users.FindCompanyByID(ctx, companyID)
}

// CompanyDirectory adapts the user repository to the assistant's tenant
// lookup.
type CompanyDirectory struct {
	users repository.UserRepository
}

// NewCompanyDirectory creates a CompanyDirectory.
func NewCompanyDirectory(users repository.UserRepository) *CompanyDirectory {
	return &CompanyDirectory{users: users}
}

func (d *CompanyDirectory) FindByID(ctx context.Context, companyID uint) (*model.Company, error) {
	return d.users.FindCompanyByID(ctx, companyID)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.jwtManager.VerifyToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	// re-read the user so a role change invalidates stale claims
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	access, err := s.jwtManager.GenerateToken(user.ID, user.CompanyID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID, user.CompanyID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
