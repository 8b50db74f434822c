// Package export escribe las filas de exportación en archivos planos (CSV y XLSX).
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appexport "github.com/jhoicas/dc-flow-dashboard/internal/application/export"
)

// Codificaciones de salida admitidas.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

var _ appexport.RowWriter = (*CSVWriter)(nil)

// CSVWriter un archivo por fila, con encabezado y una sola fila de datos.
type CSVWriter struct {
	dir      string
	encoding string
}

// NewCSVWriter valida la codificación. Cadena vacía equivale a UTF-8.
func NewCSVWriter(dir, encoding string) (*CSVWriter, error) {
	enc := strings.ToLower(strings.TrimSpace(encoding))
	switch enc {
	case "", "utf8", EncodingUTF8:
		enc = EncodingUTF8
	case "cp1252", EncodingWindows1252:
		enc = EncodingWindows1252
	default:
		return nil, fmt.Errorf("export.NewCSVWriter: codificación no soportada %q", encoding)
	}
	return &CSVWriter{dir: dir, encoding: enc}, nil
}

// Write escribe cada fila en su archivo, en orden. Un fallo no deshace los
// archivos ya escritos; los errores se acumulan.
func (w *CSVWriter) Write(ctx context.Context, rows []appexport.Row) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("export.CSVWriter: crear %s: %w", w.dir, err)
	}

	var paths []string
	var errs []error
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		path := filepath.Join(w.dir, row.FileName)
		if err := w.writeFile(path, row); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", row.Flow, err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

func (w *CSVWriter) writeFile(path string, row appexport.Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var out io.Writer = f
	if w.encoding == EncodingWindows1252 {
		// Excel en Windows abre los CSV en ANSI.
		tw := transform.NewWriter(f, charmap.Windows1252.NewEncoder())
		defer func() {
			if cerr := tw.Close(); err == nil {
				err = cerr
			}
		}()
		out = tw
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(row.Columns); err != nil {
		return err
	}
	if err := cw.Write(row.Strings()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
