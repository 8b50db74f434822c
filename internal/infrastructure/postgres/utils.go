package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
)

// fieldNames nombres de columna tal como los reporta el servidor.
func fieldNames(fds []pgconn.FieldDescription) []string {
	names := make([]string, len(fds))
	for i, fd := range fds {
		names[i] = fd.Name
	}
	return names
}
