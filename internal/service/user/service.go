package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
)

type UserServiceImpl struct {
	user.UserRepository
	employeeRepo employee.EmployeeRepository

	hashCost int
}

func NewUserService(userRepository user.UserRepository, employeeRepo employee.EmployeeRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		employeeRepo:   employeeRepo,
		hashCost:       bcrypt.DefaultCost,
	}
}

func (s *UserServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureUnique(ctx, username, email, nil); err != nil {
		return user.UserResponse{}, err
	}
	if req.EmployeeID != nil {
		if err := s.ensureLinkable(ctx, *req.EmployeeID, nil); err != nil {
			return user.UserResponse{}, err
		}
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role, _ := user.ParseRole(req.Role)
	created, err := s.UserRepository.Create(ctx, user.User{
		Username:     username,
		Email:        email,
		PasswordHash: &hashed,
		Role:         role,
		EmployeeID:   req.EmployeeID,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return s.Get(ctx, created.ID)
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.ToResponse(u), nil
}

// Update implements user.UserService. An empty employee_id unlinks the account.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != u.Email {
			if err := s.ensureUnique(ctx, "", email, &u.ID); err != nil {
				return user.UserResponse{}, err
			}
			u.Email = email
		}
	}
	if req.Password != nil {
		hashed, err := s.hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = &hashed
	}
	if req.Role != nil {
		role, ok := user.ParseRole(*req.Role)
		if !ok {
			return user.UserResponse{}, user.ErrInvalidRole
		}
		u.Role = role
	}
	if req.EmployeeID != nil {
		if strings.TrimSpace(*req.EmployeeID) == "" {
			u.EmployeeID = nil
		} else {
			if err := s.ensureLinkable(ctx, *req.EmployeeID, &u.ID); err != nil {
				return user.UserResponse{}, err
			}
			u.EmployeeID = req.EmployeeID
		}
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return s.Get(ctx, u.ID)
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return user.ErrCannotDeleteSelf
	}
	if _, err := s.UserRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.UserRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	if err := filter.Validate(); err != nil {
		return user.ListUserResponse{}, err
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return pagination.NewList(responses, filter.Params, total), nil
}

// ensureUnique reports which of username or email is taken. An empty username
// only checks the email.
func (s *UserServiceImpl) ensureUnique(ctx context.Context, username, email string, excludeID *string) error {
	exists, err := s.UserRepository.ExistsByUsernameOrEmail(ctx, username, email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return nil
	}

	existing, err := s.UserRepository.GetByEmail(ctx, email)
	switch {
	case err == nil && (excludeID == nil || existing.ID != *excludeID):
		return user.ErrUserEmailExists
	case err != nil && !errors.Is(err, user.ErrUserNotFound):
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	return user.ErrUsernameExists
}

func (s *UserServiceImpl) ensureLinkable(ctx context.Context, employeeID string, userID *string) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	linked, err := s.UserRepository.GetByEmployeeID(ctx, employeeID)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to get user by employee: %w", err)
	case userID != nil && linked.ID == *userID:
		return nil
	}
	return user.ErrEmployeeAlreadyLinked
}

var _ user.UserService = (*UserServiceImpl)(nil)
