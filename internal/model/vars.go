package model

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = sqlx.ErrNotFound

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres duplicate-key error
// from either the pgx or the pq driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
