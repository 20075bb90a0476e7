package migration

import (
	"context"
	"fmt"

	"github.com/XxArDy/hotels/internal/hotel"
	"github.com/XxArDy/hotels/internal/logger"
)

type storage interface {
	RoomTypes(ctx context.Context) ([]*hotel.RoomType, error)
	SaveRoomType(ctx context.Context, roomType *hotel.RoomType) error
	SaveRoom(ctx context.Context, room *hotel.Room) error
	SaveClient(ctx context.Context, client *hotel.Client) error
}

type idGenerator interface {
	GetID(ctx context.Context) (int, error)
}

// Up seeds room types, a few rooms and a demo client so a fresh instance can
// take bookings. A storage that already has room types is left untouched.
func Up(ctx context.Context, l *logger.Logger, storage storage, idGen idGenerator) error {
	existing, err := storage.RoomTypes(ctx)
	if err != nil {
		return fmt.Errorf("get room types: %w", err)
	}

	if len(existing) > 0 {
		l.LogInfo("Seed migration already applied, skipping")

		return nil
	}

	typeNames := []string{"Standard", "Lux"}
	typeIDs := make([]int, 0, len(typeNames))

	for _, name := range typeNames {
		id, err := idGen.GetID(ctx)
		if err != nil {
			return hotel.ErrNextID
		}

		if err := storage.SaveRoomType(ctx, &hotel.RoomType{ID: id, Name: name}); err != nil {
			return fmt.Errorf("save room type %q: %w", name, err)
		}

		typeIDs = append(typeIDs, id)
	}

	//nolint:exhaustruct
	rooms := []hotel.Room{
		{Number: 101, TypeID: typeIDs[0], Description: "Standard room", Price: 100},
		{Number: 102, TypeID: typeIDs[0], Description: "Standard room", Price: 100},
		{Number: 201, TypeID: typeIDs[1], Description: "Lux room with a view", Price: 250},
	}

	for i := range rooms {
		id, err := idGen.GetID(ctx)
		if err != nil {
			return hotel.ErrNextID
		}

		rooms[i].ID = id

		if err := storage.SaveRoom(ctx, &rooms[i]); err != nil {
			return fmt.Errorf("save room %v: %w", rooms[i].Number, err)
		}
	}

	clientID, err := idGen.GetID(ctx)
	if err != nil {
		return hotel.ErrNextID
	}

	demo := &hotel.Client{
		ID:        clientID,
		FirstName: "Ivan",
		LastName:  "Petrov",
		Phone:     "+380501234567",
		Email:     "ivan.petrov@example.com",
	}

	if err := storage.SaveClient(ctx, demo); err != nil {
		return fmt.Errorf("save client %v: %w", demo.Phone, err)
	}

	return nil
}
