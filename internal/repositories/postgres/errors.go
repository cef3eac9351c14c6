package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
)

const uniqueViolationCode = "23505"

// mapUniqueViolation translates a postgres unique-constraint error into the
// matching sentinel so services can branch on it.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return interfaces.ErrDuplicateEmail
	case strings.Contains(pgErr.ConstraintName, "incident_team"):
		return interfaces.ErrDuplicateAssignment
	}
	return err
}
