package services

import (
	"errors"
	"fmt"

	"github.com/workshop-manager/workshop-manager/internal/constants"
	"github.com/workshop-manager/workshop-manager/internal/models"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles signup, login and the user/employee link
type AuthService struct {
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) *AuthService {
	return &AuthService{userRepo: userRepo, employeeRepo: employeeRepo}
}

// SignupInput represents input for user registration
type SignupInput struct {
	Email    string
	Password string
}

// Signup registers a user. If an employee record carries the same email the
// account is linked to it at creation time, which is what grants workshop
// capabilities later.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	if employee, err := s.employeeRepo.FindByEmail(input.Email); err == nil {
		user.EmployeeID = &employee.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.userRepo.FindByID(user.ID)
}

// Login verifies credentials and returns the user
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser returns a user with its employee link
func (s *AuthService) GetUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// CapabilityOf derives the capability of a user from its linked employee.
// Users without an employee link get no workshop capability.
func (s *AuthService) CapabilityOf(user *models.User) Capability {
	if user == nil || user.Employee == nil {
		return CapabilityNone
	}
	return CapabilityForPosition(user.Employee.Position)
}
