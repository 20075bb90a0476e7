package postgres

import (
	"context"
	"fmt"
)

// The exclusion constraint on invoices is the persistence-level guarantee
// that no two bookings of a room overlap: even if two processes pass the
// application-level check, the second commit is rejected.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE SEQUENCE IF NOT EXISTS hotels_id_seq`,
	`CREATE TABLE IF NOT EXISTS room_types (
		id   INT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id          INT PRIMARY KEY,
		number      INT NOT NULL,
		type_id     INT NOT NULL REFERENCES room_types (id),
		description TEXT,
		image       TEXT,
		price       DOUBLE PRECISION NOT NULL CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id         INT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		phone      TEXT NOT NULL,
		email      TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id         INT PRIMARY KEY,
		room_id    INT NOT NULL REFERENCES rooms (id),
		client_id  INT NOT NULL REFERENCES clients (id),
		date_start TIMESTAMPTZ NOT NULL,
		date_end   TIMESTAMPTZ NOT NULL,
		amount     DOUBLE PRECISION NOT NULL,
		CHECK (date_start < date_end),
		CONSTRAINT invoices_no_overlap EXCLUDE USING gist (
			room_id WITH =,
			tstzrange(date_start, date_end) WITH &&
		)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id         INT PRIMARY KEY,
		invoice_id INT NOT NULL,
		type       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

func (db *DB) applySchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}

	return nil
}
