package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrUnknownFlow    = errors.New("flujo desconocido")
	ErrSchemaMismatch = errors.New("el origen de datos no tiene el esquema esperado")
	ErrNoDataInRange  = errors.New("no hay datos en el rango seleccionado")
	ErrExportFailed   = errors.New("falló la exportación")
)

// SchemaError indica qué columna obligatoria falta en el origen de un flujo.
// errors.Is(err, ErrSchemaMismatch) es verdadero para cualquier SchemaError.
type SchemaError struct {
	Flow   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("falta la columna %q en los datos de %s", e.Column, e.Flow)
}

func (e *SchemaError) Unwrap() error { return ErrSchemaMismatch }
