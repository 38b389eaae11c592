package service

import (
	"context"
	"fmt"
	"strings"

	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/rs/zerolog"
)

// clientService implements ClientService.
type clientService struct {
	clientRepo repository.ClientRepository
	userRepo   repository.UserRepository
	logger     zerolog.Logger
}

// NewClientService creates a new client service.
func NewClientService(clientRepo repository.ClientRepository, userRepo repository.UserRepository, logger zerolog.Logger) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		userRepo:   userRepo,
		logger:     logger.With().Str("service", "client").Logger(),
	}
}

// Create adds a client profile owned by an existing user.
func (s *clientService) Create(ctx context.Context, req *model.ClientRequest) (*model.Client, error) {
	if err := validateClientRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	if user == nil {
		return nil, model.NewNotFound("User", req.UserID)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	client := &model.Client{
		UserID:   req.UserID,
		FullName: req.FullName,
		Contact:  req.Contact,
		Address:  req.Address,
		IsActive: isActive,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info().
		Int64("client_id", client.ID).
		Int64("user_id", client.UserID).
		Msg("client created")

	return client, nil
}

// GetByID retrieves a client by id.
func (s *clientService) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, model.NewNotFound("Client", id)
	}
	return client, nil
}

// GetByUserID retrieves the client owned by a user, or nil when the user
// has no client profile.
func (s *clientService) GetByUserID(ctx context.Context, userID int64) (*model.Client, error) {
	client, err := s.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client by user: %w", err)
	}
	return client, nil
}

// GetAll retrieves all clients.
func (s *clientService) GetAll(ctx context.Context) ([]model.Client, error) {
	clients, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// Update replaces a client's profile fields.
func (s *clientService) Update(ctx context.Context, id int64, req *model.ClientRequest) (*model.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		client.FullName = req.FullName
	}
	if req.Contact != "" {
		client.Contact = req.Contact
	}
	if req.Address != "" {
		client.Address = req.Address
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

// Delete removes a client.
func (s *clientService) Delete(ctx context.Context, id int64) error {
	affected, err := s.clientRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if affected == 0 {
		return model.NewNotFound("Client", id)
	}

	s.logger.Info().Int64("client_id", id).Msg("client deleted")

	return nil
}

// validateClientRequest validates a client create request.
func validateClientRequest(req *model.ClientRequest) error {
	if req == nil {
		return model.NewValidationError("client request is required")
	}
	if req.UserID <= 0 {
		return model.NewValidationError("userId is required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return model.NewValidationError("fullName is required")
	}
	if strings.TrimSpace(req.Contact) == "" {
		return model.NewValidationError("contact is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		return model.NewValidationError("address is required")
	}
	return nil
}
