package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa el stock actual de un producto (una fila por producto distinto).
// ProductID es secuencial desde 1 y se asigna en la primera aparición del nombre;
// el nombre normalizado es la clave natural de búsqueda, no el ID.
type StockItem struct {
	ProductID  int64
	Name       string // recortado de espacios; comparación case-insensitive
	Type       string // categoría opcional del producto
	UnitValue  decimal.Decimal
	Quantity   int64
	TotalValue decimal.Decimal // derivado: Quantity * UnitValue
	UpdatedAt  time.Time
}

// Recalculate recalcula TotalValue a partir de Quantity y UnitValue.
// Debe llamarse tras toda mutación para mantener el invariante TotalValue == Quantity*UnitValue.
func (s *StockItem) Recalculate() {
	s.TotalValue = s.UnitValue.Mul(decimal.NewFromInt(s.Quantity))
}

// MatchesName indica si el nombre normalizado del item coincide con name (case-insensitive).
func (s *StockItem) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(s.Name), strings.TrimSpace(name))
}

// NextProductID devuelve el siguiente ID de producto: max(ID existente) + 1, o 1 si no hay items.
// Es un valor derivado del contenido actual de la tabla, nunca un contador cacheado.
func NextProductID(items []StockItem) int64 {
	var max int64
	for _, it := range items {
		if it.ProductID > max {
			max = it.ProductID
		}
	}
	return max + 1
}
