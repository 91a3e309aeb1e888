package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrRowTooLarge is returned when a write exceeds the store's row or field
// size limit, typically an oversized inline image payload.
var ErrRowTooLarge = errors.New("row exceeds store size limit")

// Postgres error classes that indicate a size/limit violation.
const (
	pgProgramLimitExceeded = "54000"
	pgStringDataTooLong    = "22001"
)

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgProgramLimitExceeded, pgStringDataTooLong:
			return ErrRowTooLarge
		}
	}
	return err
}
