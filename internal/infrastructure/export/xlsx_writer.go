package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	appexport "github.com/jhoicas/dc-flow-dashboard/internal/application/export"
)

var _ appexport.RowWriter = (*XLSXWriter)(nil)

// XLSXWriter un libro con una hoja por flujo.
type XLSXWriter struct {
	dir string
}

// NewXLSXWriter escribe en dir.
func NewXLSXWriter(dir string) *XLSXWriter {
	return &XLSXWriter{dir: dir}
}

// XLSXFileName data_summary_{sello}.xlsx
func XLSXFileName(stamp string) string {
	return fmt.Sprintf("data_summary_%s.xlsx", stamp)
}

// Write genera el libro completo; o se escribe todo o nada.
func (w *XLSXWriter) Write(ctx context.Context, rows []appexport.Row) ([]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("export.XLSXWriter: crear %s: %w", w.dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("export.XLSXWriter: estilo: %w", err)
	}

	for i, row := range rows {
		sheet := string(row.Flow)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("export.XLSXWriter: hoja %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("export.XLSXWriter: hoja %s: %w", sheet, err)
		}

		cols := make([]any, len(row.Columns))
		for j, c := range row.Columns {
			cols[j] = c
		}
		if err := f.SetSheetRow(sheet, "A1", &cols); err != nil {
			return nil, fmt.Errorf("export.XLSXWriter: encabezado %s: %w", sheet, err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return nil, fmt.Errorf("export.XLSXWriter: estilo %s: %w", sheet, err)
		}
		values := append([]any(nil), row.Values...)
		if err := f.SetSheetRow(sheet, "A2", &values); err != nil {
			return nil, fmt.Errorf("export.XLSXWriter: datos %s: %w", sheet, err)
		}
	}

	path := filepath.Join(w.dir, XLSXFileName(rows[0].Stamp))
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("export.XLSXWriter: guardar %s: %w", path, err)
	}
	return []string{path}, nil
}
