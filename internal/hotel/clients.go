package hotel

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
)

func (in *ClientInput) validate() error {
	inputErr := newInputError()

	if in.FirstName == "" {
		inputErr.addError("firstName", "provide firstName")
	}

	if in.LastName == "" {
		inputErr.addError("lastName", "provide lastName")
	}

	if in.Phone == "" {
		inputErr.addError("phone", "provide phone")
	}

	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			inputErr.addError("email", "provide valid email")
		}
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

// CreateClient registers a client. A client with the same phone already on
// file is returned as is instead of being duplicated.
func (m *Manager) CreateClient(ctx context.Context, input *ClientInput) (*Client, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := m.storage.ClientByPhone(ctx, input.Phone)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get client by phone: %w", err)
	}

	if err == nil {
		return existing, nil
	}

	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, ErrNextID
	}

	client := &Client{
		ID:        id,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
	}

	if err := m.storage.SaveClient(ctx, client); err != nil {
		return nil, fmt.Errorf("save client to storage: %w", err)
	}

	return client, nil
}

func (m *Manager) UpdateClient(ctx context.Context, id int, input *ClientInput) (*Client, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := m.storage.ClientByID(ctx, id); err != nil {
		return nil, fmt.Errorf("client %v: %w", id, err)
	}

	client := &Client{
		ID:        id,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
	}

	if err := m.storage.SaveClient(ctx, client); err != nil {
		return nil, fmt.Errorf("save client to storage: %w", err)
	}

	return client, nil
}

func (m *Manager) DeleteClient(ctx context.Context, id int) error {
	if _, err := m.storage.ClientByID(ctx, id); err != nil {
		return fmt.Errorf("client %v: %w", id, err)
	}

	if err := m.storage.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("delete client %v: %w", id, err)
	}

	return nil
}

func (m *Manager) ClientByID(ctx context.Context, id int) (*Client, error) {
	client, err := m.storage.ClientByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("client %v: %w", id, err)
	}

	return client, nil
}

func (m *Manager) Clients(ctx context.Context, search string, order SortOrder) ([]*Client, error) {
	clients, err := m.storage.Clients(ctx)
	if err != nil {
		return nil, fmt.Errorf("get clients: %w", err)
	}

	if search != "" {
		filtered := make([]*Client, 0, len(clients))

		for _, client := range clients {
			if containsFold(client.FirstName, search) ||
				containsFold(client.LastName, search) ||
				containsFold(client.Phone, search) {
				filtered = append(filtered, client)
			}
		}

		clients = filtered
	}

	sortByID(clients, order, func(c *Client) int { return c.ID })

	return clients, nil
}
