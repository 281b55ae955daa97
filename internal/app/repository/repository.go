// Package repository contains all database access for the flight
// journal. Each resource has its own file with an interface and a
// Postgres implementation; no business logic lives here, only SQL and
// type mapping.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrRecordNotFound is returned when the requested row does not exist.
// The service layer maps it to an HTTP 404 application error.
var ErrRecordNotFound = errors.New("record not found")

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn and
// pgx.Tx. Accepting it instead of the pool lets integration tests pass
// a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows so the per-resource
// scan helpers can serve QueryRow and Query alike.
type scanner interface {
	Scan(dest ...any) error
}
