package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntry = "ENTRY" // entrada
	MovementTypeExit  = "EXIT"  // salida
)

// TransactionRecord es un registro histórico inmutable de un movimiento.
// ProductName, ProductType y UnitValue son snapshots al momento del movimiento:
// mutaciones posteriores del StockItem no los afectan.
type TransactionRecord struct {
	ID          int64 // monotónico: max(ID existente) + 1
	Timestamp   time.Time
	ProductID   int64
	ProductName string
	ProductType string
	Type        string // ENTRY, EXIT
	Quantity    int64  // siempre positiva, independiente de la dirección
	UnitValue   decimal.Decimal
	TotalValue  decimal.Decimal // Quantity * UnitValue al momento del movimiento
}
