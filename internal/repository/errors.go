package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// pqInvalidTextRepresentation is raised when an id is not a valid UUID.
const pqInvalidTextRepresentation = "22P02"

// notFoundOnMalformedID reports lookups by a malformed id as sql.ErrNoRows,
// since no row can carry such an id.
func notFoundOnMalformedID(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqInvalidTextRepresentation {
		return sql.ErrNoRows
	}
	return err
}
