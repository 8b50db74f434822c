// Package numfmt formatea cantidades en notación abreviada (K / M) para las
// tarjetas del dashboard y hace la conversión inversa para la exportación.
//
// La conversión inversa es con pérdida: Format trunca a 2 decimales en millones
// y a 1 decimal en miles, así que ParseAbbreviated(Format(v)) solo aproxima v.
package numfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	thousand = 1_000
	million  = 1_000_000
)

// ErrNotANumber se devuelve cuando el texto no se puede interpretar como número.
var ErrNotANumber = errors.New("numfmt: valor no numérico")

// Format devuelve la representación abreviada de value:
//
//	value >= 1.000.000        → "1.50 M"
//	1.000 <= value < 1.000.000 → "2.5 K"
//	resto (incluye negativos)  → "42.00"
func Format(value float64) string {
	switch {
	case value >= million:
		return fmt.Sprintf("%.2f M", value/million)
	case value >= thousand:
		return fmt.Sprintf("%.1f K", value/thousand)
	default:
		return fmt.Sprintf("%.2f", value)
	}
}

// FormatInt es un atajo para conteos.
func FormatInt(n int) string { return Format(float64(n)) }

// ParseAbbreviated convierte "4.5 K" o "1.56 M" en el valor completo.
// Sin sufijo, el texto se interpreta como número plano.
func ParseAbbreviated(text string) (float64, error) {
	multiplier := 1.0
	raw := text
	// K se evalúa antes que M.
	switch {
	case strings.Contains(raw, "K"):
		raw = strings.ReplaceAll(raw, "K", "")
		multiplier = thousand
	case strings.Contains(raw, "M"):
		raw = strings.ReplaceAll(raw, "M", "")
		multiplier = million
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}
	return f * multiplier, nil
}
