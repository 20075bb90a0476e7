package hotel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

func (in *RoomInput) validate() error {
	inputErr := newInputError()

	if in.Number <= 0 {
		inputErr.addError("number", "provide positive room number")
	}

	if in.TypeID <= 0 {
		inputErr.addError("typeId", "provide typeId")
	}

	if in.Price < 0 {
		inputErr.addError("price", "price must not be negative")
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

func (m *Manager) CreateRoom(ctx context.Context, input *RoomInput) (*Room, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, ErrNextID
	}

	//nolint:exhaustruct // Type is resolved on read
	room := &Room{
		ID:          id,
		Number:      input.Number,
		TypeID:      input.TypeID,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
	}

	if err := m.storage.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("save room to storage: %w", err)
	}

	m.decorateRoom(ctx, room)

	return room, nil
}

func (m *Manager) UpdateRoom(ctx context.Context, id int, input *RoomInput) (*Room, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := m.storage.RoomByID(ctx, id); err != nil {
		return nil, fmt.Errorf("room %v: %w", id, err)
	}

	//nolint:exhaustruct
	room := &Room{
		ID:          id,
		Number:      input.Number,
		TypeID:      input.TypeID,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
	}

	if err := m.storage.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("save room to storage: %w", err)
	}

	m.decorateRoom(ctx, room)

	return room, nil
}

func (m *Manager) DeleteRoom(ctx context.Context, id int) error {
	if _, err := m.storage.RoomByID(ctx, id); err != nil {
		return fmt.Errorf("room %v: %w", id, err)
	}

	if err := m.storage.DeleteRoom(ctx, id); err != nil {
		return fmt.Errorf("delete room %v: %w", id, err)
	}

	return nil
}

func (m *Manager) RoomByID(ctx context.Context, id int) (*Room, error) {
	room, err := m.storage.RoomByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("room %v: %w", id, err)
	}

	m.decorateRoom(ctx, room)

	return room, nil
}

// Rooms lists rooms, optionally filtered by a search term matched against
// the room number, description and type name, and optionally sorted by id.
func (m *Manager) Rooms(ctx context.Context, search string, order SortOrder) ([]*Room, error) {
	rooms, err := m.storage.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	for _, room := range rooms {
		m.decorateRoom(ctx, room)
	}

	if search != "" {
		num, _ := strconv.Atoi(search)

		filtered := make([]*Room, 0, len(rooms))

		for _, room := range rooms {
			if (room.Number == num && num != 0) ||
				containsFold(room.Description, search) ||
				(room.Type != nil && containsFold(room.Type.Name, search)) {
				filtered = append(filtered, room)
			}
		}

		rooms = filtered
	}

	sortByID(rooms, order, func(r *Room) int { return r.ID })

	return rooms, nil
}

func (m *Manager) RoomTypes(ctx context.Context) ([]*RoomType, error) {
	types, err := m.storage.RoomTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("get room types: %w", err)
	}

	sortByID(types, SortAsc, func(t *RoomType) int { return t.ID })

	return types, nil
}

func (m *Manager) decorateRoom(ctx context.Context, room *Room) {
	roomType, err := m.storage.RoomTypeByID(ctx, room.TypeID)
	if err == nil {
		room.Type = roomType

		return
	}

	if !errors.Is(err, ErrNotFound) {
		m.l.LogWarnf("Could not resolve type %v for room %v: %v", room.TypeID, room.ID, err.Error())
	}
}
