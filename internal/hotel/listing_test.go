package hotel_test

import (
	"context"
	"testing"

	"github.com/XxArDy/hotels/internal/hotel"
)

func TestInvoices_SearchAndSort(t *testing.T) {
	m, db := newManager(t)

	if err := db.SaveRoomType(context.Background(), &hotel.RoomType{ID: 1, Name: "Lux"}); err != nil {
		t.Fatalf("seed room type: %v", err)
	}

	room101 := seedRoom(t, m, 101, 100)
	room102 := seedRoom(t, m, 102, 100)
	anna := seedClient(t, m, "Anna", "+100")
	boris := seedClient(t, m, "Boris", "+200")

	first := book(t, m, room101.ID, anna.ID, date(2024, 1, 1), date(2024, 1, 3))
	second := book(t, m, room102.ID, boris.ID, date(2024, 1, 1), date(2024, 1, 3))

	cases := []struct {
		name    string
		search  string
		wantIDs []int
	}{
		{"by first name", "anna", []int{first.ID}},
		{"by phone", "+200", []int{second.ID}},
		{"by room number", "102", []int{second.ID}},
		{"by room type name", "lux", []int{first.ID, second.ID}},
		{"no match", "nothing", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			invoices, err := m.Invoices(context.Background(), tc.search, hotel.SortAsc)
			if err != nil {
				t.Fatalf("list invoices: %v", err)
			}

			if len(invoices) != len(tc.wantIDs) {
				t.Fatalf("got %d invoices, want %d", len(invoices), len(tc.wantIDs))
			}

			for i, id := range tc.wantIDs {
				if invoices[i].ID != id {
					t.Errorf("invoice %d: got id %d, want %d", i, invoices[i].ID, id)
				}
			}
		})
	}

	t.Run("descending", func(t *testing.T) {
		invoices, err := m.Invoices(context.Background(), "", hotel.SortDesc)
		if err != nil {
			t.Fatalf("list invoices: %v", err)
		}

		if len(invoices) != 2 || invoices[0].ID != second.ID || invoices[1].ID != first.ID {
			t.Errorf("descending order broken: got %v then %v", invoices[0].ID, invoices[1].ID)
		}
	})
}

func TestRooms_SearchAndSort(t *testing.T) {
	m, db := newManager(t)

	if err := db.SaveRoomType(context.Background(), &hotel.RoomType{ID: 1, Name: "Standard"}); err != nil {
		t.Fatalf("seed room type: %v", err)
	}

	room101 := seedRoom(t, m, 101, 100)

	sea, err := m.CreateRoom(context.Background(), &hotel.RoomInput{
		Number:      201,
		TypeID:      1,
		Description: "Sea view",
		Price:       250,
	})
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}

	rooms, err := m.Rooms(context.Background(), "sea", hotel.SortAsc)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}

	if len(rooms) != 1 || rooms[0].ID != sea.ID {
		t.Fatalf("search by description: got %+v", rooms)
	}

	rooms, err = m.Rooms(context.Background(), "101", hotel.SortAsc)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}

	if len(rooms) != 1 || rooms[0].ID != room101.ID {
		t.Fatalf("search by number: got %+v", rooms)
	}

	rooms, err = m.Rooms(context.Background(), "standard", hotel.SortDesc)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}

	if len(rooms) != 2 || rooms[0].ID != sea.ID {
		t.Fatalf("search by type name, descending: got %+v", rooms)
	}
}

func TestClients_SearchAndSort(t *testing.T) {
	m, _ := newManager(t)

	anna := seedClient(t, m, "Anna", "+100")
	boris := seedClient(t, m, "Boris", "+200")

	clients, err := m.Clients(context.Background(), "bor", hotel.SortAsc)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}

	if len(clients) != 1 || clients[0].ID != boris.ID {
		t.Fatalf("search by name: got %+v", clients)
	}

	clients, err = m.Clients(context.Background(), "", hotel.SortDesc)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}

	if len(clients) != 2 || clients[0].ID != boris.ID || clients[1].ID != anna.ID {
		t.Fatalf("descending order broken: got %+v", clients)
	}
}
