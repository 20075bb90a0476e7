package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/XxArDy/hotels/internal/hotel"
	"github.com/XxArDy/hotels/internal/logger"
)

type Config struct {
	L *logger.Logger
}

// transaction stages invoice-path writes until commit. Reads never observe
// staged state, which gives the read-committed isolation the booking flow
// assumes.
type transaction struct {
	id             string
	invoiceSaves   map[int]*hotel.Invoice
	invoiceDeletes map[int]struct{}
	eventSaves     map[int]*hotel.Event
}

type DB struct {
	mu           sync.Mutex
	l            *logger.Logger
	clients      map[int]*hotel.Client
	roomTypes    map[int]*hotel.RoomType
	rooms        map[int]*hotel.Room
	invoices     map[int]*hotel.Invoice
	events       map[int]*hotel.Event
	transactions map[string]*transaction
	nextTrxID    int64
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:            conf.L,
		clients:      make(map[int]*hotel.Client),
		roomTypes:    make(map[int]*hotel.RoomType),
		rooms:        make(map[int]*hotel.Room),
		invoices:     make(map[int]*hotel.Invoice),
		events:       make(map[int]*hotel.Event),
		transactions: make(map[string]*transaction),
	}
}

func (db *DB) BeginTransaction(ctx context.Context, _ string) (context.Context, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID := fmt.Sprintf("trx-%d", db.nextTrxID)
	db.nextTrxID++

	db.transactions[trxID] = &transaction{
		id:             trxID,
		invoiceSaves:   make(map[int]*hotel.Invoice),
		invoiceDeletes: make(map[int]struct{}),
		eventSaves:     make(map[int]*hotel.Event),
	}

	return withTransactionID(ctx, trxID), nil
}

func (db *DB) transactionFromContext(ctx context.Context) (*transaction, error) {
	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return nil, ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return nil, fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	return trx, nil
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transactionFromContext(ctx)
	if err != nil {
		return err
	}

	for id, invoice := range trx.invoiceSaves {
		db.invoices[id] = invoice
	}

	for id := range trx.invoiceDeletes {
		delete(db.invoices, id)
	}

	for id, event := range trx.eventSaves {
		db.events[id] = event
	}

	delete(db.transactions, trx.id)

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transactionFromContext(ctx)
	if err != nil {
		return err
	}

	delete(db.transactions, trx.id)

	return nil
}

// Clients

func (db *DB) SaveClient(_ context.Context, client *hotel.Client) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	cp := *client
	db.clients[client.ID] = &cp

	return nil
}

func (db *DB) ClientByID(_ context.Context, id int) (*hotel.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	client, exists := db.clients[id]
	if !exists {
		return nil, hotel.ErrNotFound
	}

	cp := *client

	return &cp, nil
}

func (db *DB) ClientByPhone(_ context.Context, phone string) (*hotel.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, client := range db.clients {
		if client.Phone == phone {
			cp := *client

			return &cp, nil
		}
	}

	return nil, hotel.ErrNotFound
}

func (db *DB) Clients(_ context.Context) ([]*hotel.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	clients := make([]*hotel.Client, 0, len(db.clients))

	for _, client := range db.clients {
		cp := *client
		clients = append(clients, &cp)
	}

	return clients, nil
}

func (db *DB) DeleteClient(_ context.Context, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.clients[id]; !exists {
		return hotel.ErrNotFound
	}

	delete(db.clients, id)

	return nil
}

// Room types and rooms

func (db *DB) SaveRoomType(_ context.Context, roomType *hotel.RoomType) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	cp := *roomType
	db.roomTypes[roomType.ID] = &cp

	return nil
}

func (db *DB) RoomTypeByID(_ context.Context, id int) (*hotel.RoomType, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	roomType, exists := db.roomTypes[id]
	if !exists {
		return nil, hotel.ErrNotFound
	}

	cp := *roomType

	return &cp, nil
}

func (db *DB) RoomTypes(_ context.Context) ([]*hotel.RoomType, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	types := make([]*hotel.RoomType, 0, len(db.roomTypes))

	for _, roomType := range db.roomTypes {
		cp := *roomType
		types = append(types, &cp)
	}

	return types, nil
}

func (db *DB) SaveRoom(_ context.Context, room *hotel.Room) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	cp := *room
	cp.Type = nil
	db.rooms[room.ID] = &cp

	return nil
}

func (db *DB) RoomByID(_ context.Context, id int) (*hotel.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	room, exists := db.rooms[id]
	if !exists {
		return nil, hotel.ErrNotFound
	}

	cp := *room

	return &cp, nil
}

func (db *DB) Rooms(_ context.Context) ([]*hotel.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rooms := make([]*hotel.Room, 0, len(db.rooms))

	for _, room := range db.rooms {
		cp := *room
		rooms = append(rooms, &cp)
	}

	return rooms, nil
}

func (db *DB) DeleteRoom(_ context.Context, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.rooms[id]; !exists {
		return hotel.ErrNotFound
	}

	delete(db.rooms, id)

	return nil
}

// Invoices and events. Writes join the transaction carried by the context
// when there is one and apply immediately otherwise.

func (db *DB) SaveInvoice(ctx context.Context, invoice *hotel.Invoice) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	cp := *invoice
	cp.Room = nil
	cp.Client = nil

	if _, ok := transactionIDFromContext(ctx); ok {
		trx, err := db.transactionFromContext(ctx)
		if err != nil {
			return err
		}

		trx.invoiceSaves[invoice.ID] = &cp
		delete(trx.invoiceDeletes, invoice.ID)

		return nil
	}

	db.invoices[invoice.ID] = &cp

	return nil
}

func (db *DB) InvoiceByID(_ context.Context, id int) (*hotel.Invoice, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	invoice, exists := db.invoices[id]
	if !exists {
		return nil, hotel.ErrNotFound
	}

	cp := *invoice

	return &cp, nil
}

func (db *DB) Invoices(_ context.Context) ([]*hotel.Invoice, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	invoices := make([]*hotel.Invoice, 0, len(db.invoices))

	for _, invoice := range db.invoices {
		cp := *invoice
		invoices = append(invoices, &cp)
	}

	return invoices, nil
}

func (db *DB) InvoicesForRoom(_ context.Context, roomID, excludeInvoiceID int) ([]*hotel.Invoice, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var invoices []*hotel.Invoice

	for _, invoice := range db.invoices {
		if invoice.RoomID != roomID || invoice.ID == excludeInvoiceID {
			continue
		}

		cp := *invoice
		invoices = append(invoices, &cp)
	}

	return invoices, nil
}

func (db *DB) DeleteInvoice(ctx context.Context, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := transactionIDFromContext(ctx); ok {
		trx, err := db.transactionFromContext(ctx)
		if err != nil {
			return err
		}

		trx.invoiceDeletes[id] = struct{}{}
		delete(trx.invoiceSaves, id)

		return nil
	}

	if _, exists := db.invoices[id]; !exists {
		return hotel.ErrNotFound
	}

	delete(db.invoices, id)

	return nil
}

func (db *DB) SaveEvent(ctx context.Context, event *hotel.Event) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	cp := *event

	if _, ok := transactionIDFromContext(ctx); ok {
		trx, err := db.transactionFromContext(ctx)
		if err != nil {
			return err
		}

		trx.eventSaves[event.ID] = &cp

		return nil
	}

	db.events[event.ID] = &cp

	return nil
}
