package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUndefinedTable 42P01: la tabla aún no existe (schema sin aplicar).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

// wrapErr agrega la operación y un hint si falta el schema.
func wrapErr(op string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%s: %w (ejecutar `seed load` o EnsureSchema)", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
