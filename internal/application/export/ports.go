package export

import "context"

// RowWriter escribe las filas de una exportación y devuelve las rutas creadas.
// Escribe en el orden recibido y no deshace lo ya escrito si una fila falla;
// en ese caso devuelve las rutas exitosas junto con el error.
type RowWriter interface {
	Write(ctx context.Context, rows []Row) ([]string, error)
}
