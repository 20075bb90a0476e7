package hotel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/XxArDy/hotels/internal/hotel"
)

func TestIsRoomAvailable_BoundaryCases(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	// existing booking occupies [2024-01-20, 2024-01-25)
	book(t, m, room.ID, client.ID, date(2024, 1, 20), date(2024, 1, 25))

	cases := []struct {
		name      string
		start     time.Time
		end       time.Time
		available bool
	}{
		{"touching before", date(2024, 1, 15), date(2024, 1, 20), true},
		{"touching after", date(2024, 1, 25), date(2024, 1, 27), true},
		{"inside", date(2024, 1, 22), date(2024, 1, 23), false},
		{"start inside", date(2024, 1, 24), date(2024, 1, 28), false},
		{"end inside", date(2024, 1, 18), date(2024, 1, 21), false},
		{"contains existing", date(2024, 1, 19), date(2024, 1, 26), false},
		{"same range", date(2024, 1, 20), date(2024, 1, 25), false},
		{"one minute overlap", date(2024, 1, 19), date(2024, 1, 20).Add(time.Minute), false},
		{"disjoint before", date(2024, 1, 1), date(2024, 1, 10), true},
		{"disjoint after", date(2024, 2, 1), date(2024, 2, 10), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			available, err := m.IsRoomAvailable(context.Background(), room.ID, tc.start, tc.end, 0)
			if err != nil {
				t.Fatalf("check availability: %v", err)
			}

			if available != tc.available {
				t.Errorf("range [%v, %v): got available=%v, want %v", tc.start, tc.end, available, tc.available)
			}
		})
	}
}

func TestIsRoomAvailable_SelfExclusion(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	invoice := book(t, m, room.ID, client.ID, date(2024, 3, 1), date(2024, 3, 5))

	available, err := m.IsRoomAvailable(context.Background(), room.ID, date(2024, 3, 1), date(2024, 3, 5), invoice.ID)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}

	if !available {
		t.Error("invoice must not conflict with its own interval when excluded")
	}

	available, err = m.IsRoomAvailable(context.Background(), room.ID, date(2024, 3, 1), date(2024, 3, 5), 0)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}

	if available {
		t.Error("occupied interval must conflict when nothing is excluded")
	}
}

func TestIsRoomAvailable_UnknownRoom(t *testing.T) {
	m, _ := newManager(t)

	available, err := m.IsRoomAvailable(context.Background(), 999, date(2024, 1, 1), date(2024, 1, 5), 0)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}

	if !available {
		t.Error("a room with no invoices must report available")
	}
}

func TestIsRoomAvailable_NormalizesTimezones(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)
	client := seedClient(t, m, "Anna", "+100")

	book(t, m, room.ID, client.ID, date(2024, 1, 20), date(2024, 1, 25))

	plus2 := time.FixedZone("UTC+2", 2*60*60)

	// 2024-01-25 02:00 +02:00 is exactly 2024-01-25 00:00 UTC: touching, no conflict
	start := time.Date(2024, 1, 25, 2, 0, 0, 0, plus2)
	end := time.Date(2024, 1, 27, 2, 0, 0, 0, plus2)

	available, err := m.IsRoomAvailable(context.Background(), room.ID, start, end, 0)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}

	if !available {
		t.Error("instants equal under UTC must not be treated as overlapping")
	}

	// 2024-01-25 01:00 +02:00 is 2024-01-24 23:00 UTC: one hour inside
	start = time.Date(2024, 1, 25, 1, 0, 0, 0, plus2)

	available, err = m.IsRoomAvailable(context.Background(), room.ID, start, end, 0)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}

	if available {
		t.Error("an overlap hidden by timezone offsets must still be detected")
	}
}

func TestCalculateAmount(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 100)

	cases := []struct {
		name   string
		start  time.Time
		end    time.Time
		amount float64
	}{
		{"two days", date(2024, 1, 25), date(2024, 1, 27), 200},
		{"five days", date(2024, 1, 15), date(2024, 1, 20), 500},
		{"half day", date(2024, 1, 1), date(2024, 1, 1).Add(12 * time.Hour), 50},
		{"zero length", date(2024, 1, 1), date(2024, 1, 1), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := m.CalculateAmount(context.Background(), room.ID, tc.start, tc.end)
			if err != nil {
				t.Fatalf("calculate amount: %v", err)
			}

			if amount != tc.amount {
				t.Errorf("got amount %v, want %v", amount, tc.amount)
			}
		})
	}
}

func TestCalculateAmount_LinearInDuration(t *testing.T) {
	m, _ := newManager(t)
	room := seedRoom(t, m, 101, 137.5)

	single, err := m.CalculateAmount(context.Background(), room.ID, date(2024, 1, 1), date(2024, 1, 4))
	if err != nil {
		t.Fatalf("calculate amount: %v", err)
	}

	double, err := m.CalculateAmount(context.Background(), room.ID, date(2024, 1, 1), date(2024, 1, 7))
	if err != nil {
		t.Fatalf("calculate amount: %v", err)
	}

	if double != 2*single {
		t.Errorf("doubling the stay must double the amount: got %v and %v", single, double)
	}
}

func TestCalculateAmount_RoomNotFound(t *testing.T) {
	m, _ := newManager(t)

	_, err := m.CalculateAmount(context.Background(), 999, date(2024, 1, 1), date(2024, 1, 2))
	if !errors.Is(err, hotel.ErrRoomNotFound) {
		t.Errorf("got %v, want ErrRoomNotFound", err)
	}
}
