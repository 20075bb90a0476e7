package hotel

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const hoursPerDay = 24

// IsRoomAvailable reports whether the room is free over the half-open range
// [dateStart, dateEnd). excludeInvoiceID (0 for none) leaves one invoice out
// of the comparison so an invoice being updated does not conflict with
// itself. All instants are normalized to UTC before comparison; a room with
// no invoices, including a non-existent one, is available.
func (m *Manager) IsRoomAvailable(
	ctx context.Context,
	roomID int,
	dateStart, dateEnd time.Time,
	excludeInvoiceID int,
) (bool, error) {
	dateStart = dateStart.UTC()
	dateEnd = dateEnd.UTC()

	invoices, err := m.storage.InvoicesForRoom(ctx, roomID, excludeInvoiceID)
	if err != nil {
		return false, fmt.Errorf("get invoices for room %v: %w", roomID, err)
	}

	for _, invoice := range invoices {
		if overlaps(dateStart, dateEnd, invoice.DateStart.UTC(), invoice.DateEnd.UTC()) {
			return false, nil
		}
	}

	return true, nil
}

// overlaps keeps the three boundary cases explicit so that half-open
// semantics hold exactly: a range ending when another starts is no conflict.
func overlaps(start, end, existingStart, existingEnd time.Time) bool {
	// start falls inside the existing interval
	if !start.Before(existingStart) && start.Before(existingEnd) {
		return true
	}

	// end falls inside the existing interval
	if end.After(existingStart) && !end.After(existingEnd) {
		return true
	}

	// the candidate fully contains the existing interval
	if !start.After(existingStart) && !end.Before(existingEnd) {
		return true
	}

	return false
}

// CalculateAmount charges the room's daily price for the exact fractional
// number of days between dateStart and dateEnd. Callers needing currency
// rounding apply it at presentation time.
func (m *Manager) CalculateAmount(ctx context.Context, roomID int, dateStart, dateEnd time.Time) (float64, error) {
	room, err := m.storage.RoomByID(ctx, roomID)
	if errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("room %v: %w", roomID, ErrRoomNotFound)
	}

	if err != nil {
		return 0, fmt.Errorf("get room %v: %w", roomID, err)
	}

	duration := dateEnd.Sub(dateStart).Hours() / hoursPerDay

	return room.Price * duration, nil
}
