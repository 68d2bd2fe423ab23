package excel

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Formato de fecha/hora almacenado en las celdas. Sin zona horaria: el medio no
// soporta metadatos de timezone, todo timestamp se normaliza a naive al escribir.
const timeLayout = "2006-01-02 15:04:05"

// formatTime serializa t como texto naive (reloj de pared, sin offset).
func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// parseTime deserializa una celda de fecha. Acepta también RFC3339 y fecha sola
// por robustez ante archivos editados a mano. Valor cero si no es parseable.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{timeLayout, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseInt coerciona una celda a entero; valores ausentes o no parseables caen
// al centinela 0 para que el matching por nombre siga funcionando.
func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseDecimal coerciona una celda a decimal; cero si no es parseable.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
