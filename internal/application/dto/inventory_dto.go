package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// MovementRequest body para POST /api/inventory/entries y /api/inventory/exits.
// unit_value es opcional salvo en la primera entrada de un producto nuevo y se
// ignora en salidas; movement_date ausente se sustituye por "ahora".
// product_id se acepta por compatibilidad pero nunca se usa como clave de
// búsqueda: el nombre normalizado es autoritativo.
type MovementRequest struct {
	ProductID    int64            `json:"product_id,omitempty"`
	ProductName  string           `json:"product_name"`
	ProductType  string           `json:"product_type,omitempty"`
	Quantity     int64            `json:"quantity"`
	UnitValue    *decimal.Decimal `json:"unit_value,omitempty"`
	MovementDate *time.Time       `json:"movement_date,omitempty"`
}

// StockItemDTO fila de stock actual en respuestas.
type StockItemDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductType string          `json:"product_type,omitempty"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	Quantity    int64           `json:"quantity"`
	TotalValue  decimal.Decimal `json:"total_value"`
	LastUpdated time.Time       `json:"last_updated"`
}

// NewStockItemDTO convierte la entidad a DTO de respuesta.
func NewStockItemDTO(it entity.StockItem) StockItemDTO {
	return StockItemDTO{
		ProductID:   it.ProductID,
		ProductName: it.Name,
		ProductType: it.Type,
		UnitValue:   it.UnitValue,
		Quantity:    it.Quantity,
		TotalValue:  it.TotalValue,
		LastUpdated: it.UpdatedAt,
	}
}

// TransactionDTO registro del histórico en respuestas.
type TransactionDTO struct {
	TransactionID int64           `json:"transaction_id"`
	Timestamp     time.Time       `json:"timestamp"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductType   string          `json:"product_type,omitempty"`
	MovementType  string          `json:"movement_type"`
	Quantity      int64           `json:"quantity"`
	UnitValue     decimal.Decimal `json:"unit_value"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// NewTransactionDTO convierte la entidad a DTO de respuesta.
func NewTransactionDTO(rec entity.TransactionRecord) TransactionDTO {
	return TransactionDTO{
		TransactionID: rec.ID,
		Timestamp:     rec.Timestamp,
		ProductID:     rec.ProductID,
		ProductName:   rec.ProductName,
		ProductType:   rec.ProductType,
		MovementType:  rec.Type,
		Quantity:      rec.Quantity,
		UnitValue:     rec.UnitValue,
		TotalValue:    rec.TotalValue,
	}
}
