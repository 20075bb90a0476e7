package hotel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

func (in *InvoiceInput) validate() error {
	inputErr := newInputError()

	if in.RoomID <= 0 {
		inputErr.addError("roomId", "provide roomId")
	}

	if in.ClientID <= 0 {
		inputErr.addError("clientId", "provide clientId")
	}

	if !in.DateStart.Before(in.DateEnd) {
		inputErr.addError("dateStart", "dateStart must be before dateEnd")
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

// prepareDates pins both instants to UTC so stored and incoming ranges are
// compared under one canonical timezone.
func (in *InvoiceInput) prepareDates() {
	in.DateStart = in.DateStart.UTC()
	in.DateEnd = in.DateEnd.UTC()
}

func (m *Manager) buildInvoice(ctx context.Context, input *InvoiceInput, amount float64) (*Invoice, error) {
	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, ErrNextID
	}

	//nolint:exhaustruct // Room and Client are resolved on read
	return &Invoice{
		ID:        id,
		RoomID:    input.RoomID,
		ClientID:  input.ClientID,
		DateStart: input.DateStart,
		DateEnd:   input.DateEnd,
		Amount:    amount,
	}, nil
}

func (m *Manager) buildEvent(ctx context.Context, invoiceID int, eventType EventType) (*Event, error) {
	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, ErrNextID
	}

	return &Event{
		ID:        id,
		InvoiceID: invoiceID,
		Type:      eventType,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// commitInvoice persists the invoice and its event atomically, following the
// begin/defer-commit shape used across the storage layer.
func (m *Manager) commitInvoice(ctx context.Context, invoice *Invoice, event *Event) (err error) {
	ctx, err = m.storage.BeginTransaction(ctx, "READ COMMITTED")
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if err = m.storage.RollbackTransaction(ctx); err != nil {
				m.l.LogErrorf("Could not rollback booking transaction after panic %v", p)
			}

			panic(p)
		}

		if err != nil {
			if rbErr := m.storage.RollbackTransaction(ctx); rbErr != nil {
				m.l.LogErrorf("Could not rollback booking transaction after error %v", rbErr.Error())
			}

			return
		}

		err = m.storage.CommitTransaction(ctx)
		if err != nil {
			m.l.LogErrorf("Could not commit booking transaction, err %v", err.Error())
		}
	}()

	if err = m.storage.SaveInvoice(ctx, invoice); err != nil {
		return fmt.Errorf("save invoice to storage: %w", err)
	}

	if err = m.storage.SaveEvent(ctx, event); err != nil {
		return fmt.Errorf("save event to storage: %w", err)
	}

	return nil
}

// CreateInvoice books a room for a client. The room's lock is held across
// the availability check and the commit, so concurrent overlapping requests
// cannot both succeed.
func (m *Manager) CreateInvoice(ctx context.Context, input *InvoiceInput) (*Invoice, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	input.prepareDates()

	unlock := m.lockRoom(input.RoomID)
	defer unlock()

	available, err := m.IsRoomAvailable(ctx, input.RoomID, input.DateStart, input.DateEnd, 0)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	if !available {
		return nil, fmt.Errorf("room %v, range [%v, %v): %w", input.RoomID, input.DateStart, input.DateEnd, ErrBookingConflict)
	}

	amount, err := m.CalculateAmount(ctx, input.RoomID, input.DateStart, input.DateEnd)
	if err != nil {
		return nil, fmt.Errorf("calculate amount: %w", err)
	}

	invoice, err := m.buildInvoice(ctx, input, amount)
	if err != nil {
		return nil, fmt.Errorf("build invoice: %w", err)
	}

	event, err := m.buildEvent(ctx, invoice.ID, EventInvoiceCreated)
	if err != nil {
		return nil, fmt.Errorf("build event for invoice %v: %w", invoice.ID, err)
	}

	if err := m.commitInvoice(ctx, invoice, event); err != nil {
		return nil, err
	}

	m.decorateInvoice(ctx, invoice)
	m.notifySinks(ctx, event, invoice)

	return invoice, nil
}

// UpdateInvoice re-books an existing invoice with a new room, client or date
// range. The invoice's own interval is excluded from the conflict check; the
// conflict check deliberately precedes the existence check.
func (m *Manager) UpdateInvoice(ctx context.Context, id int, input *InvoiceInput) (*Invoice, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	input.prepareDates()

	unlock := m.lockRoom(input.RoomID)
	defer unlock()

	available, err := m.IsRoomAvailable(ctx, input.RoomID, input.DateStart, input.DateEnd, id)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	if !available {
		return nil, fmt.Errorf("room %v, range [%v, %v): %w", input.RoomID, input.DateStart, input.DateEnd, ErrBookingConflict)
	}

	if _, err := m.storage.InvoiceByID(ctx, id); err != nil {
		return nil, fmt.Errorf("invoice %v: %w", id, err)
	}

	amount, err := m.CalculateAmount(ctx, input.RoomID, input.DateStart, input.DateEnd)
	if err != nil {
		return nil, fmt.Errorf("calculate amount: %w", err)
	}

	//nolint:exhaustruct
	invoice := &Invoice{
		ID:        id,
		RoomID:    input.RoomID,
		ClientID:  input.ClientID,
		DateStart: input.DateStart,
		DateEnd:   input.DateEnd,
		Amount:    amount,
	}

	event, err := m.buildEvent(ctx, id, EventInvoiceUpdated)
	if err != nil {
		return nil, fmt.Errorf("build event for invoice %v: %w", id, err)
	}

	if err := m.commitInvoice(ctx, invoice, event); err != nil {
		return nil, err
	}

	m.decorateInvoice(ctx, invoice)
	m.notifySinks(ctx, event, invoice)

	return invoice, nil
}

func (m *Manager) DeleteInvoice(ctx context.Context, id int) error {
	invoice, err := m.storage.InvoiceByID(ctx, id)
	if err != nil {
		return fmt.Errorf("invoice %v: %w", id, err)
	}

	if err := m.storage.DeleteInvoice(ctx, id); err != nil {
		return fmt.Errorf("delete invoice %v: %w", id, err)
	}

	event, err := m.buildEvent(ctx, id, EventInvoiceDeleted)
	if err != nil {
		return fmt.Errorf("build event for invoice %v: %w", id, err)
	}

	if err := m.storage.SaveEvent(ctx, event); err != nil {
		m.l.LogWarnf("Could not save delete event for invoice %v: %v", id, err.Error())
	}

	m.notifySinks(ctx, event, invoice)

	return nil
}

func (m *Manager) InvoiceByID(ctx context.Context, id int) (*Invoice, error) {
	invoice, err := m.storage.InvoiceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice %v: %w", id, err)
	}

	m.decorateInvoice(ctx, invoice)

	return invoice, nil
}

// Invoices lists bookings, optionally filtered by a search term matched
// against the client's names and phone, the room number and the room type
// name, and optionally sorted by id.
func (m *Manager) Invoices(ctx context.Context, search string, order SortOrder) ([]*Invoice, error) {
	invoices, err := m.storage.Invoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("get invoices: %w", err)
	}

	for _, invoice := range invoices {
		m.decorateInvoice(ctx, invoice)
	}

	if search != "" {
		invoices = filterInvoices(invoices, search)
	}

	sortByID(invoices, order, func(i *Invoice) int { return i.ID })

	return invoices, nil
}

func filterInvoices(invoices []*Invoice, search string) []*Invoice {
	num, _ := strconv.Atoi(search)

	filtered := make([]*Invoice, 0, len(invoices))

	for _, invoice := range invoices {
		if invoice.Client != nil &&
			(containsFold(invoice.Client.FirstName, search) ||
				containsFold(invoice.Client.LastName, search) ||
				containsFold(invoice.Client.Phone, search)) {
			filtered = append(filtered, invoice)

			continue
		}

		if invoice.Room != nil && invoice.Room.Number == num && num != 0 {
			filtered = append(filtered, invoice)

			continue
		}

		if invoice.Room != nil && invoice.Room.Type != nil && containsFold(invoice.Room.Type.Name, search) {
			filtered = append(filtered, invoice)
		}
	}

	return filtered
}

// decorateInvoice resolves the referenced room (with its type) and client.
// Dangling references stay nil rather than failing the read.
func (m *Manager) decorateInvoice(ctx context.Context, invoice *Invoice) {
	if room, err := m.storage.RoomByID(ctx, invoice.RoomID); err == nil {
		m.decorateRoom(ctx, room)
		invoice.Room = room
	} else if !errors.Is(err, ErrNotFound) {
		m.l.LogWarnf("Could not resolve room %v for invoice %v: %v", invoice.RoomID, invoice.ID, err.Error())
	}

	if client, err := m.storage.ClientByID(ctx, invoice.ClientID); err == nil {
		invoice.Client = client
	} else if !errors.Is(err, ErrNotFound) {
		m.l.LogWarnf("Could not resolve client %v for invoice %v: %v", invoice.ClientID, invoice.ID, err.Error())
	}
}
