package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"

	"github.com/XxArDy/hotels/internal/hotel"
)

// SQLSTATE for exclusion-constraint violations.
const exclusionViolation = "23P01"

// Clients

func (db *DB) SaveClient(ctx context.Context, client *hotel.Client) error {
	_, err := db.querier(ctx).ExecContext(ctx, `
		INSERT INTO clients (id, first_name, last_name, phone, email)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			phone      = EXCLUDED.phone,
			email      = EXCLUDED.email`,
		client.ID, client.FirstName, client.LastName, client.Phone, client.Email,
	)
	if err != nil {
		return fmt.Errorf("save client %v: %w", client.ID, err)
	}

	return nil
}

func scanClient(row *sql.Row) (*hotel.Client, error) {
	var (
		client hotel.Client
		email  sql.NullString
	)

	err := row.Scan(&client.ID, &client.FirstName, &client.LastName, &client.Phone, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hotel.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("scan client: %w", err)
	}

	client.Email = email.String

	return &client, nil
}

func (db *DB) ClientByID(ctx context.Context, id int) (*hotel.Client, error) {
	row := db.querier(ctx).QueryRowContext(ctx, `
		SELECT id, first_name, last_name, phone, email FROM clients WHERE id = $1`, id)

	return scanClient(row)
}

func (db *DB) ClientByPhone(ctx context.Context, phone string) (*hotel.Client, error) {
	row := db.querier(ctx).QueryRowContext(ctx, `
		SELECT id, first_name, last_name, phone, email FROM clients WHERE phone = $1`, phone)

	return scanClient(row)
}

func (db *DB) Clients(ctx context.Context) ([]*hotel.Client, error) {
	rows, err := db.querier(ctx).QueryContext(ctx, `
		SELECT id, first_name, last_name, phone, email FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []*hotel.Client

	for rows.Next() {
		var (
			client hotel.Client
			email  sql.NullString
		)

		if err := rows.Scan(&client.ID, &client.FirstName, &client.LastName, &client.Phone, &email); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}

		client.Email = email.String
		clients = append(clients, &client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}

func (db *DB) DeleteClient(ctx context.Context, id int) error {
	return db.deleteByID(ctx, "clients", id)
}

// Room types and rooms

func (db *DB) SaveRoomType(ctx context.Context, roomType *hotel.RoomType) error {
	_, err := db.querier(ctx).ExecContext(ctx, `
		INSERT INTO room_types (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		roomType.ID, roomType.Name,
	)
	if err != nil {
		return fmt.Errorf("save room type %v: %w", roomType.ID, err)
	}

	return nil
}

func (db *DB) RoomTypeByID(ctx context.Context, id int) (*hotel.RoomType, error) {
	var roomType hotel.RoomType

	err := db.querier(ctx).QueryRowContext(ctx, `
		SELECT id, name FROM room_types WHERE id = $1`, id).
		Scan(&roomType.ID, &roomType.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hotel.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("scan room type: %w", err)
	}

	return &roomType, nil
}

func (db *DB) RoomTypes(ctx context.Context) ([]*hotel.RoomType, error) {
	rows, err := db.querier(ctx).QueryContext(ctx, `SELECT id, name FROM room_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query room types: %w", err)
	}
	defer rows.Close()

	var types []*hotel.RoomType

	for rows.Next() {
		var roomType hotel.RoomType

		if err := rows.Scan(&roomType.ID, &roomType.Name); err != nil {
			return nil, fmt.Errorf("scan room type: %w", err)
		}

		types = append(types, &roomType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room types: %w", err)
	}

	return types, nil
}

func (db *DB) SaveRoom(ctx context.Context, room *hotel.Room) error {
	_, err := db.querier(ctx).ExecContext(ctx, `
		INSERT INTO rooms (id, number, type_id, description, image, price)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
		ON CONFLICT (id) DO UPDATE SET
			number      = EXCLUDED.number,
			type_id     = EXCLUDED.type_id,
			description = EXCLUDED.description,
			image       = EXCLUDED.image,
			price       = EXCLUDED.price`,
		room.ID, room.Number, room.TypeID, room.Description, room.Image, room.Price,
	)
	if err != nil {
		return fmt.Errorf("save room %v: %w", room.ID, err)
	}

	return nil
}

func (db *DB) RoomByID(ctx context.Context, id int) (*hotel.Room, error) {
	var (
		room               hotel.Room
		description, image sql.NullString
	)

	err := db.querier(ctx).QueryRowContext(ctx, `
		SELECT id, number, type_id, description, image, price FROM rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.Number, &room.TypeID, &description, &image, &room.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hotel.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("scan room: %w", err)
	}

	room.Description = description.String
	room.Image = image.String

	return &room, nil
}

func (db *DB) Rooms(ctx context.Context) ([]*hotel.Room, error) {
	rows, err := db.querier(ctx).QueryContext(ctx, `
		SELECT id, number, type_id, description, image, price FROM rooms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*hotel.Room

	for rows.Next() {
		var (
			room               hotel.Room
			description, image sql.NullString
		)

		if err := rows.Scan(&room.ID, &room.Number, &room.TypeID, &description, &image, &room.Price); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}

		room.Description = description.String
		room.Image = image.String
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}

	return rooms, nil
}

func (db *DB) DeleteRoom(ctx context.Context, id int) error {
	return db.deleteByID(ctx, "rooms", id)
}

// Invoices and events

func (db *DB) SaveInvoice(ctx context.Context, invoice *hotel.Invoice) error {
	_, err := db.querier(ctx).ExecContext(ctx, `
		INSERT INTO invoices (id, room_id, client_id, date_start, date_end, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			room_id    = EXCLUDED.room_id,
			client_id  = EXCLUDED.client_id,
			date_start = EXCLUDED.date_start,
			date_end   = EXCLUDED.date_end,
			amount     = EXCLUDED.amount`,
		invoice.ID, invoice.RoomID, invoice.ClientID, invoice.DateStart, invoice.DateEnd, invoice.Amount,
	)

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return fmt.Errorf("invoice %v overlaps an existing booking: %w", invoice.ID, hotel.ErrBookingConflict)
	}

	if err != nil {
		return fmt.Errorf("save invoice %v: %w", invoice.ID, err)
	}

	return nil
}

func (db *DB) InvoiceByID(ctx context.Context, id int) (*hotel.Invoice, error) {
	var invoice hotel.Invoice

	err := db.querier(ctx).QueryRowContext(ctx, `
		SELECT id, room_id, client_id, date_start, date_end, amount FROM invoices WHERE id = $1`, id).
		Scan(&invoice.ID, &invoice.RoomID, &invoice.ClientID, &invoice.DateStart, &invoice.DateEnd, &invoice.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hotel.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("scan invoice: %w", err)
	}

	return &invoice, nil
}

func (db *DB) Invoices(ctx context.Context) ([]*hotel.Invoice, error) {
	return db.queryInvoices(ctx, `
		SELECT id, room_id, client_id, date_start, date_end, amount FROM invoices ORDER BY id`)
}

func (db *DB) InvoicesForRoom(ctx context.Context, roomID, excludeInvoiceID int) ([]*hotel.Invoice, error) {
	return db.queryInvoices(ctx, `
		SELECT id, room_id, client_id, date_start, date_end, amount
		FROM invoices WHERE room_id = $1 AND id <> $2 ORDER BY id`,
		roomID, excludeInvoiceID)
}

func (db *DB) queryInvoices(ctx context.Context, query string, args ...any) ([]*hotel.Invoice, error) {
	rows, err := db.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*hotel.Invoice

	for rows.Next() {
		var invoice hotel.Invoice

		err := rows.Scan(
			&invoice.ID,
			&invoice.RoomID,
			&invoice.ClientID,
			&invoice.DateStart,
			&invoice.DateEnd,
			&invoice.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}

		invoices = append(invoices, &invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, nil
}

func (db *DB) DeleteInvoice(ctx context.Context, id int) error {
	return db.deleteByID(ctx, "invoices", id)
}

func (db *DB) SaveEvent(ctx context.Context, event *hotel.Event) error {
	_, err := db.querier(ctx).ExecContext(ctx, `
		INSERT INTO events (id, invoice_id, type, created_at) VALUES ($1, $2, $3, $4)`,
		event.ID, event.InvoiceID, string(event.Type), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save event %v: %w", event.ID, err)
	}

	return nil
}

func (db *DB) deleteByID(ctx context.Context, table string, id int) error {
	res, err := db.querier(ctx).ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s delete: %w", table, err)
	}

	if affected == 0 {
		return hotel.ErrNotFound
	}

	return nil
}
