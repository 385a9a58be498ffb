package service

import (
	"context"
	"strings"

	"shiftdesk/internal/models"
	"shiftdesk/internal/repository"
	"shiftdesk/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements account management and credential checks.
type UserService struct {
	users repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUserInput carries the fields accepted when creating an account.
type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Group    string `json:"group"`
	Client   string `json:"client"`
	Avatar   string `json:"avatar"`
}

// Create registers a new user. The password is stored as a bcrypt hash.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Role == "" {
		in.Role = models.RoleEmployee
	}
	if !models.ValidRole(in.Role) {
		return nil, models.NewValidationError("Unknown role")
	}

	if existing, err := s.users.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username is already taken")
	}
	if existing, err := s.users.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Role:     in.Role,
		Group:    in.Group,
		Client:   in.Client,
		Avatar:   in.Avatar,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the matching user. The same
// error is returned for unknown accounts and bad passwords.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// Get returns one user by ID. Supervisors and admins may view anyone;
// employees only themselves.
func (s *UserService) Get(ctx context.Context, actor *models.User, id uint) (*models.User, error) {
	if actor.ID != id && !actor.IsStaff() {
		return nil, models.NewForbiddenError("You cannot view this user")
	}
	return s.users.GetByID(ctx, id)
}

// List returns a page of users ordered by username. Staff only.
func (s *UserService) List(ctx context.Context, actor *models.User, limit, offset int) ([]models.User, error) {
	if !actor.IsStaff() {
		return nil, models.NewForbiddenError("You cannot list users")
	}
	return s.users.List(ctx, limit, offset)
}

// UpdateUserInput carries the updatable account fields. Nil pointers leave
// the current value untouched.
type UpdateUserInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Group    *string `json:"group"`
	Client   *string `json:"client"`
	Avatar   *string `json:"avatar"`
}

// Update modifies a user account. Only admins may change roles; users may
// only edit their own account unless they are an admin.
func (s *UserService) Update(ctx context.Context, actor *models.User, id uint, in UpdateUserInput) (*models.User, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return nil, models.NewForbiddenError("You cannot modify this user")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = email
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hash)
	}
	if in.Role != nil {
		if !actor.IsAdmin() {
			return nil, models.NewForbiddenError("Only admins can change roles")
		}
		if !models.ValidRole(*in.Role) {
			return nil, models.NewValidationError("Unknown role")
		}
		user.Role = *in.Role
	}
	if in.Group != nil {
		user.Group = *in.Group
	}
	if in.Client != nil {
		user.Client = *in.Client
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user account. Admin only; admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if !actor.IsAdmin() {
		return models.NewForbiddenError("Only admins can delete users")
	}
	if actor.ID == id {
		return models.NewValidationError("You cannot delete your own account")
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
