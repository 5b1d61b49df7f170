package service

import (
	"context"
	"strings"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/repository"
	"github.com/eyeroniq/poslite/pkg/apperror"
	"github.com/google/uuid"
)

// ClientService handles client-related operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Name  string
	Email *string
	Phone *string
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "is required"},
		})
	}

	client := &entity.Client{
		Name:  name,
		Email: input.Email,
		Phone: input.Phone,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}
