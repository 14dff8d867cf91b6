package service

import (
	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService credential verification and token issuance
type AuthService interface {
	Login(req *domain.LoginRequest) (*domain.LoginResponse, error)
	Me(userID string) (*domain.User, error)
}

type authService struct {
	users      repository.UserRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{users: users, jwtManager: jwtManager}
}

func (s *authService) Login(req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same error as a bad password so callers cannot probe for accounts
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{Token: token, User: user}, nil
}

func (s *authService) Me(userID string) (*domain.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}
	return user, nil
}
