package repository

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// StockRepository acceso a la tabla de stock actual.
// El medio de almacenamiento no soporta updates por fila: toda mutación
// se persiste con ReplaceAll (reescritura completa de la tabla).
type StockRepository interface {
	// List devuelve todas las filas de stock. Fallo transitorio de lectura
	// degrada a lista vacía (se registra en el log, no se propaga).
	List() ([]entity.StockItem, error)
	// ReplaceAll reescribe la tabla completa. Un fallo aquí se propaga:
	// puede dejar las dos tablas mutuamente inconsistentes.
	ReplaceAll(items []entity.StockItem) error
}

// TransactionFilter filtros opcionales para el histórico de movimientos.
// Los límites son inclusivos; ProductType compara case-insensitive.
type TransactionFilter struct {
	Start       *time.Time
	End         *time.Time
	ProductType string
}

// TransactionRepository acceso a la tabla histórica de movimientos (append-only).
type TransactionRepository interface {
	List() ([]entity.TransactionRecord, error)
	// Append agrega un registro al final de la tabla (lectura completa + reescritura).
	Append(rec *entity.TransactionRecord) error
	// NextID devuelve max(ID existente) + 1, o 1 si la tabla está vacía.
	// Recalculado en cada llamada; los huecos de escrituras fallidas no se reutilizan.
	NextID() (int64, error)
}
