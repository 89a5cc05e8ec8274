// Package store holds the hand-written SQL layer. Every store is a thin
// struct over the shared pgx pool; multi-statement mutations go through
// db.WithTransaction.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
