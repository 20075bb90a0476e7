package hotel_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/XxArDy/hotels/internal/hotel"
)

type recordingSink struct {
	mu     sync.Mutex
	events []hotel.EventType
}

func (r *recordingSink) InvoiceEvent(_ context.Context, event *hotel.Event, _ *hotel.Invoice) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event.Type)
}

func (r *recordingSink) recorded() []hotel.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]hotel.EventType(nil), r.events...)
}

func TestCreateInvoice_Scenario(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	book(t, m, room.ID, client.ID, date(2024, 1, 20), date(2024, 1, 25))

	_, err := m.CreateInvoice(context.Background(), &hotel.InvoiceInput{
		RoomID:    room.ID,
		ClientID:  client.ID,
		DateStart: date(2024, 1, 22),
		DateEnd:   date(2024, 1, 23),
	})
	if !errors.Is(err, hotel.ErrBookingConflict) {
		t.Fatalf("overlapping create: got %v, want ErrBookingConflict", err)
	}

	after := book(t, m, room.ID, client.ID, date(2024, 1, 25), date(2024, 1, 27))
	if after.Amount != 200 {
		t.Errorf("two-day stay: got amount %v, want 200", after.Amount)
	}

	before := book(t, m, room.ID, client.ID, date(2024, 1, 15), date(2024, 1, 20))
	if before.Amount != 500 {
		t.Errorf("five-day stay: got amount %v, want 500", before.Amount)
	}
}

func TestCreateInvoice_Validation(t *testing.T) {
	m, _ := newManager(t)

	_, err := m.CreateInvoice(context.Background(), &hotel.InvoiceInput{
		RoomID:    0,
		ClientID:  0,
		DateStart: date(2024, 1, 5),
		DateEnd:   date(2024, 1, 1),
	})

	inputErr := hotel.IsInputError(err)
	if inputErr == nil {
		t.Fatalf("got %v, want input error", err)
	}

	for _, field := range []string{"roomId", "clientId", "dateStart"} {
		if _, ok := inputErr.Fields()[field]; !ok {
			t.Errorf("field %q missing from input error %v", field, inputErr.Fields())
		}
	}
}

func TestCreateInvoice_RoomNotFound(t *testing.T) {
	m, _ := newManager(t)
	client := seedClient(t, m, "Anna", "+100")

	_, err := m.CreateInvoice(context.Background(), &hotel.InvoiceInput{
		RoomID:    999,
		ClientID:  client.ID,
		DateStart: date(2024, 1, 1),
		DateEnd:   date(2024, 1, 5),
	})
	if !errors.Is(err, hotel.ErrRoomNotFound) {
		t.Errorf("got %v, want ErrRoomNotFound", err)
	}
}

func TestCreateInvoice_ResolvesRelations(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	invoice := book(t, m, room.ID, client.ID, date(2024, 1, 1), date(2024, 1, 3))

	if invoice.Room == nil || invoice.Room.ID != room.ID {
		t.Errorf("invoice must carry its room, got %+v", invoice.Room)
	}

	if invoice.Client == nil || invoice.Client.ID != client.ID {
		t.Errorf("invoice must carry its client, got %+v", invoice.Client)
	}
}

func TestUpdateInvoice_SelfOverlapSucceeds(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	invoice := book(t, m, room.ID, client.ID, date(2024, 1, 20), date(2024, 1, 25))

	updated, err := m.UpdateInvoice(context.Background(), invoice.ID, &hotel.InvoiceInput{
		RoomID:    room.ID,
		ClientID:  client.ID,
		DateStart: date(2024, 1, 20),
		DateEnd:   date(2024, 1, 25),
	})
	if err != nil {
		t.Fatalf("updating an invoice to its own range must not conflict: %v", err)
	}

	if updated.Amount != 500 {
		t.Errorf("got amount %v, want 500", updated.Amount)
	}
}

func TestUpdateInvoice_ConflictLeavesRecordUnchanged(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	book(t, m, room.ID, client.ID, date(2024, 1, 20), date(2024, 1, 25))
	invoice := book(t, m, room.ID, client.ID, date(2024, 2, 1), date(2024, 2, 5))

	_, err := m.UpdateInvoice(context.Background(), invoice.ID, &hotel.InvoiceInput{
		RoomID:    room.ID,
		ClientID:  client.ID,
		DateStart: date(2024, 1, 21),
		DateEnd:   date(2024, 1, 23),
	})
	if !errors.Is(err, hotel.ErrBookingConflict) {
		t.Fatalf("got %v, want ErrBookingConflict", err)
	}

	current, err := m.InvoiceByID(context.Background(), invoice.ID)
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}

	if !current.DateStart.Equal(date(2024, 2, 1)) || !current.DateEnd.Equal(date(2024, 2, 5)) {
		t.Errorf("rejected update must leave the record unchanged, got [%v, %v)", current.DateStart, current.DateEnd)
	}
}

func TestUpdateInvoice_NotFound(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	_, err := m.UpdateInvoice(context.Background(), 999, &hotel.InvoiceInput{
		RoomID:    room.ID,
		ClientID:  client.ID,
		DateStart: date(2024, 1, 1),
		DateEnd:   date(2024, 1, 5),
	})
	if !errors.Is(err, hotel.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateInvoice_MoveToAnotherRoom(t *testing.T) {
	m, _ := newManager(t)
	first := seedRoom(t, m, 101, 100)
	second := seedRoom(t, m, 102, 250)
	client := seedClient(t, m, "Anna", "+100")

	invoice := book(t, m, first.ID, client.ID, date(2024, 1, 20), date(2024, 1, 25))

	updated, err := m.UpdateInvoice(context.Background(), invoice.ID, &hotel.InvoiceInput{
		RoomID:    second.ID,
		ClientID:  client.ID,
		DateStart: date(2024, 1, 20),
		DateEnd:   date(2024, 1, 22),
	})
	if err != nil {
		t.Fatalf("move invoice to free room: %v", err)
	}

	if updated.Amount != 500 {
		t.Errorf("amount must use the new room's price: got %v, want 500", updated.Amount)
	}

	// the first room's interval is freed
	available, err := m.IsRoomAvailable(context.Background(), first.ID, date(2024, 1, 20), date(2024, 1, 25), 0)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}

	if !available {
		t.Error("moving an invoice must free its old room")
	}
}

func TestDeleteInvoice_FreesInterval(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	invoice := book(t, m, room.ID, client.ID, date(2024, 1, 20), date(2024, 1, 25))

	if err := m.DeleteInvoice(context.Background(), invoice.ID); err != nil {
		t.Fatalf("delete invoice: %v", err)
	}

	if _, err := m.InvoiceByID(context.Background(), invoice.ID); !errors.Is(err, hotel.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound after deletion", err)
	}

	// the exact former interval is bookable again
	book(t, m, room.ID, client.ID, date(2024, 1, 20), date(2024, 1, 25))
}

func TestDeleteInvoice_NotFound(t *testing.T) {
	m, _ := newManager(t)

	if err := m.DeleteInvoice(context.Background(), 999); !errors.Is(err, hotel.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestInvoiceLifecycle_EmitsEvents(t *testing.T) {
	sink := &recordingSink{}
	m, _ := newManager(t, sink)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	invoice := book(t, m, room.ID, client.ID, date(2024, 1, 1), date(2024, 1, 3))

	if _, err := m.UpdateInvoice(context.Background(), invoice.ID, &hotel.InvoiceInput{
		RoomID:    room.ID,
		ClientID:  client.ID,
		DateStart: date(2024, 1, 1),
		DateEnd:   date(2024, 1, 4),
	}); err != nil {
		t.Fatalf("update invoice: %v", err)
	}

	if err := m.DeleteInvoice(context.Background(), invoice.ID); err != nil {
		t.Fatalf("delete invoice: %v", err)
	}

	want := []hotel.EventType{hotel.EventInvoiceCreated, hotel.EventInvoiceUpdated, hotel.EventInvoiceDeleted}

	got := sink.recorded()
	if len(got) != len(want) {
		t.Fatalf("got events %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestConcurrentCreate_NoDoubleBooking(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	const attempts = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := m.CreateInvoice(context.Background(), &hotel.InvoiceInput{
				RoomID:    room.ID,
				ClientID:  client.ID,
				DateStart: date(2024, 1, 20),
				DateEnd:   date(2024, 1, 25),
			})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, hotel.ErrBookingConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if succeeded != 1 {
		t.Errorf("exactly one concurrent booking must win, got %d", succeeded)
	}

	if conflicts != attempts-1 {
		t.Errorf("got %d conflicts, want %d", conflicts, attempts-1)
	}
}
