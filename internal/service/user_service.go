package service

import (
	"context"
	"fmt"
	"strings"

	"shopfront/internal/auth"
	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// SignUp registers a new user with a hashed password. New accounts always
// start with the client role.
func (s *userService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	if err := validateSignUp(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}
	if existing != nil {
		s.logger.Warn().Str("email", email).Msg("signup attempt with taken email")
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{model.RoleClient},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user signed up")

	return user, nil
}

// SignIn verifies credentials and issues an access token.
func (s *userService) SignIn(ctx context.Context, req *model.SignInRequest) (*model.SignInResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("email", email).Msg("invalid credentials")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user signed in")

	return &model.SignInResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

// GetByID retrieves a user by id.
func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.NewNotFound("User", id)
	}
	return user, nil
}

// GetAll retrieves all users.
func (s *userService) GetAll(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update applies a partial update to a user.
func (s *userService) Update(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			existing, err := s.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
			if existing != nil {
				return nil, model.ErrEmailTaken
			}
			user.Email = email
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user.
func (s *userService) Delete(ctx context.Context, id int64) error {
	affected, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		return model.NewNotFound("User", id)
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")

	return nil
}

// validateSignUp validates the signup request.
func validateSignUp(req *model.SignUpRequest) error {
	if req == nil {
		return model.NewValidationError("signup request is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("name is required")
	}
	if !strings.Contains(req.Email, "@") {
		return model.NewValidationError("a valid email is required")
	}
	if len(req.Password) < 8 {
		return model.NewValidationError("password must be at least 8 characters")
	}
	return nil
}
