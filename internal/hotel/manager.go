package hotel

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/XxArDy/hotels/internal/logger"
)

type idGenerator interface {
	GetID(ctx context.Context) (int, error)
}

type storageReader interface {
	ClientByID(ctx context.Context, id int) (*Client, error)
	ClientByPhone(ctx context.Context, phone string) (*Client, error)
	Clients(ctx context.Context) ([]*Client, error)

	RoomTypeByID(ctx context.Context, id int) (*RoomType, error)
	RoomTypes(ctx context.Context) ([]*RoomType, error)
	RoomByID(ctx context.Context, id int) (*Room, error)
	Rooms(ctx context.Context) ([]*Room, error)

	InvoiceByID(ctx context.Context, id int) (*Invoice, error)
	Invoices(ctx context.Context) ([]*Invoice, error)
	InvoicesForRoom(ctx context.Context, roomID, excludeInvoiceID int) ([]*Invoice, error)
}

type storageWriter interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error

	SaveClient(ctx context.Context, client *Client) error
	DeleteClient(ctx context.Context, id int) error

	SaveRoomType(ctx context.Context, roomType *RoomType) error
	SaveRoom(ctx context.Context, room *Room) error
	DeleteRoom(ctx context.Context, id int) error

	SaveInvoice(ctx context.Context, invoice *Invoice) error
	DeleteInvoice(ctx context.Context, id int) error
	SaveEvent(ctx context.Context, event *Event) error
}

type storage interface {
	storageReader
	storageWriter
}

// EventSink receives committed booking events. Sinks must not block the
// request path; failures are theirs to report.
type EventSink interface {
	InvoiceEvent(ctx context.Context, event *Event, invoice *Invoice)
}

type Manager struct {
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	sinks       []EventSink

	// roomLocks serializes check-and-commit per room so that two
	// overlapping bookings cannot both pass the availability check.
	roomLocksMu sync.Mutex
	roomLocks   map[int]*sync.Mutex
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator, sinks ...EventSink) *Manager {
	//nolint:exhaustruct
	return &Manager{
		l:           l,
		storage:     storage,
		idGenerator: idGenerator,
		sinks:       sinks,
		roomLocks:   make(map[int]*sync.Mutex),
	}
}

func (m *Manager) lockRoom(roomID int) func() {
	m.roomLocksMu.Lock()

	lock, ok := m.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		m.roomLocks[roomID] = lock
	}

	m.roomLocksMu.Unlock()

	lock.Lock()

	return lock.Unlock
}

func (m *Manager) notifySinks(ctx context.Context, event *Event, invoice *Invoice) {
	for _, sink := range m.sinks {
		sink.InvoiceEvent(ctx, event, invoice)
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sortByID[T any](items []T, order SortOrder, id func(T) int) {
	switch order {
	case SortAsc:
		sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
	case SortDesc:
		sort.Slice(items, func(i, j int) bool { return id(items[i]) > id(items[j]) })
	case SortNone:
	}
}
