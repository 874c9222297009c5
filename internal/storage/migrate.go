// Package storage bootstraps the PostgreSQL schema. The gateway owns its
// tables; there is no external migration tool in the loop.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS sectors (
		sector_code TEXT PRIMARY KEY,
		sector_name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS airlines (
		airline_id   TEXT PRIMARY KEY,
		airline_name TEXT NOT NULL DEFAULT '',
		fare         DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id                    TEXT PRIMARY KEY,
		username              TEXT NOT NULL UNIQUE,
		password_hash         TEXT NOT NULL,
		upstream_user_id      TEXT NOT NULL,
		upstream_api_password TEXT NOT NULL,
		agency_id             TEXT NOT NULL,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id                 BIGSERIAL PRIMARY KEY,
		username           TEXT NOT NULL,
		pnr                TEXT NOT NULL,
		airline_id         TEXT NOT NULL DEFAULT '',
		flight_id          TEXT NOT NULL DEFAULT '',
		flight_no          TEXT NOT NULL DEFAULT '',
		flight_date        TEXT NOT NULL DEFAULT '',
		departure          TEXT NOT NULL DEFAULT '',
		arrival            TEXT NOT NULL DEFAULT '',
		contact_name       TEXT NOT NULL DEFAULT '',
		contact_email      TEXT NOT NULL DEFAULT '',
		contact_mobile     TEXT NOT NULL DEFAULT '',
		reservation_status TEXT NOT NULL DEFAULT '',
		ttl_date           TEXT,
		ttl_time           TEXT,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (username, pnr)
	)`,
	`CREATE TABLE IF NOT EXISTS passengers (
		id             BIGSERIAL PRIMARY KEY,
		booking_id     BIGINT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		pax_type       TEXT NOT NULL DEFAULT '',
		title          TEXT NOT NULL DEFAULT '',
		gender         TEXT NOT NULL DEFAULT '',
		first_name     TEXT NOT NULL DEFAULT '',
		last_name      TEXT NOT NULL DEFAULT '',
		nationality    TEXT NOT NULL DEFAULT '',
		ticket_no      TEXT NOT NULL DEFAULT '',
		fare           DOUBLE PRECISION NOT NULL DEFAULT 0,
		fuel_surcharge DOUBLE PRECISION NOT NULL DEFAULT 0,
		tax            DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_username ON bookings (username)`,
	`CREATE INDEX IF NOT EXISTS idx_passengers_booking ON passengers (booking_id)`,
}

// Migrate applies the schema idempotently.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
