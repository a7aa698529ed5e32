package partner

import (
	"context"
	"fmt"

	appord "github.com/bookshop/backend/internal/application/order"
	"github.com/bookshop/backend/internal/domain/partner"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client business operations
type ClientService struct {
	clientRepo     partner.ClientRepository
	eventPublisher shared.EventPublisher
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// SetEventPublisher sets the publisher that receives domain events after
// each committed operation
func (s *ClientService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new client. Phone numbers are unique across clients.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	exists, err := s.clientRepo.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("checking client phone: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this phone number already exists")
	}

	client, err := partner.NewClient(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := client.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Reference != "" {
		if err := client.SetReference(req.Reference); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("saving client: %w", err)
	}

	appord.PublishEvents(ctx, s.eventPublisher, client)
	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with pagination
func (s *ClientService) List(ctx context.Context, page int, pageSize *int) ([]ClientResponse, int64, error) {
	pagination := shared.DefaultFilter()
	if page > 0 {
		pagination.Page = page
	}
	if pageSize != nil && *pageSize > 0 {
		pagination.PageSize = *pageSize
	}

	clients, err := s.clientRepo.FindAll(ctx, pagination)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.Count(ctx, pagination)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, ToClientResponse(&clients[i]))
	}
	return responses, total, nil
}

// Update updates a client's fields
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := client.Name
	if req.Name != nil {
		name = *req.Name
	}
	phone := client.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	address := client.Address
	if req.Address != nil {
		address = *req.Address
	}

	if req.Phone != nil && phone != client.Phone {
		exists, err := s.clientRepo.ExistsByPhone(ctx, phone)
		if err != nil {
			return nil, fmt.Errorf("checking client phone: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this phone number already exists")
		}
	}

	if err := client.Update(name, phone, address); err != nil {
		return nil, err
	}
	if req.Email != nil {
		if err := client.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Reference != nil {
		if err := client.SetReference(*req.Reference); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("saving client: %w", err)
	}

	appord.PublishEvents(ctx, s.eventPublisher, client)
	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}
