package hotel_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/XxArDy/hotels/internal/hotel"
	"github.com/XxArDy/hotels/internal/idgen/simple"
	"github.com/XxArDy/hotels/internal/logger"
	"github.com/XxArDy/hotels/internal/storage/memory"
)

func newManager(t *testing.T, sinks ...hotel.EventSink) (*hotel.Manager, *memory.DB) {
	t.Helper()

	l := logger.New(log.New(io.Discard, "", 0))
	db := memory.New(memory.Config{L: l})

	return hotel.New(l, db, simple.New(), sinks...), db
}

func seedRoom(t *testing.T, m *hotel.Manager, number int, price float64) *hotel.Room {
	t.Helper()

	room, err := m.CreateRoom(context.Background(), &hotel.RoomInput{
		Number: number,
		TypeID: 1,
		Price:  price,
	})
	if err != nil {
		t.Fatalf("seed room %d: %v", number, err)
	}

	return room
}

func seedClient(t *testing.T, m *hotel.Manager, firstName, phone string) *hotel.Client {
	t.Helper()

	client, err := m.CreateClient(context.Background(), &hotel.ClientInput{
		FirstName: firstName,
		LastName:  "Tester",
		Phone:     phone,
	})
	if err != nil {
		t.Fatalf("seed client %s: %v", firstName, err)
	}

	return client
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func book(t *testing.T, m *hotel.Manager, roomID, clientID int, start, end time.Time) *hotel.Invoice {
	t.Helper()

	invoice, err := m.CreateInvoice(context.Background(), &hotel.InvoiceInput{
		RoomID:    roomID,
		ClientID:  clientID,
		DateStart: start,
		DateEnd:   end,
	})
	if err != nil {
		t.Fatalf("book room %d for [%v, %v): %v", roomID, start, end, err)
	}

	return invoice
}
