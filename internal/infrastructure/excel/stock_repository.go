package excel

import (
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre la hoja de stock del workbook.
// Usar dentro de TxRunner.Run: los métodos asumen que el lock global ya está tomado.
type StockRepo struct {
	wb *Workbook
}

// NewStockRepository construye el adaptador de stock.
func NewStockRepository(wb *Workbook) *StockRepo {
	return &StockRepo{wb: wb}
}

// List devuelve todas las filas de stock en orden de hoja. Normaliza nombres
// (trim) e IDs (no parseable -> 0) para un matching robusto.
func (r *StockRepo) List() ([]entity.StockItem, error) {
	rows := r.wb.readRows(r.wb.StockSheet())
	items := make([]entity.StockItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, unmarshalStockRow(row))
	}
	return items, nil
}

// ReplaceAll reescribe la hoja de stock completa.
func (r *StockRepo) ReplaceAll(items []entity.StockItem) error {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, marshalStockRow(it))
	}
	return r.wb.writeRows(r.wb.StockSheet(), rows)
}

// Columnas: product_id, product_name, product_type, unit_value, quantity, last_updated, total_value.

func marshalStockRow(it entity.StockItem) []interface{} {
	return []interface{}{
		it.ProductID,
		it.Name,
		it.Type,
		it.UnitValue.InexactFloat64(),
		it.Quantity,
		formatTime(it.UpdatedAt),
		it.TotalValue.InexactFloat64(),
	}
}

func unmarshalStockRow(row []string) entity.StockItem {
	return entity.StockItem{
		ProductID:  parseInt(row[0]),
		Name:       strings.TrimSpace(row[1]),
		Type:       strings.TrimSpace(row[2]),
		UnitValue:  parseDecimal(row[3]),
		Quantity:   parseInt(row[4]),
		UpdatedAt:  parseTime(row[5]),
		TotalValue: parseDecimal(row[6]),
	}
}
