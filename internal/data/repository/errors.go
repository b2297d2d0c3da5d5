// Package repository persists the booking domain on Postgres via pgx.
// Sentinel errors defined here let services distinguish business-level
// persistence outcomes (a taken ticket number, a lock wait that ran out)
// from plain failures.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrTicketTaken is returned when a booking insert hits the unique
// constraint on ticket_number. Callers regenerate the code and retry.
var ErrTicketTaken = errors.New("ticket number already taken")

// ErrLockTimeout is returned when the show row lock could not be
// acquired within the configured wait. Transient; callers may retry the
// whole attempt.
var ErrLockTimeout = errors.New("timed out waiting for show lock")

// ErrShowNotFound is returned by the ledger scope when the show row does
// not exist.
var ErrShowNotFound = errors.New("show not found")

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation, optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// isLockWaitErr reports whether err means the row lock wait was cut
// short, either by the context deadline or by a server-side timeout.
func isLockWaitErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var pgErr *pgconn.PgError
	// 55P03 lock_not_available, 57014 query_canceled
	return errors.As(err, &pgErr) && (pgErr.Code == "55P03" || pgErr.Code == "57014")
}
