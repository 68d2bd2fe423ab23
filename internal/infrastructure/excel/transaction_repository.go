package excel

import (
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre la hoja de
// histórico del workbook (append-only). Usar dentro de TxRunner.Run.
type TransactionRepo struct {
	wb *Workbook
}

// NewTransactionRepository construye el adaptador del histórico de movimientos.
func NewTransactionRepository(wb *Workbook) *TransactionRepo {
	return &TransactionRepo{wb: wb}
}

// List devuelve el histórico completo en orden de inserción.
func (r *TransactionRepo) List() ([]entity.TransactionRecord, error) {
	rows := r.wb.readRows(r.wb.TransactionsSheet())
	recs := make([]entity.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, unmarshalTransactionRow(row))
	}
	return recs, nil
}

// Append agrega un registro al final de la hoja (lectura completa + reescritura).
func (r *TransactionRepo) Append(rec *entity.TransactionRecord) error {
	return r.wb.appendRow(r.wb.TransactionsSheet(), marshalTransactionRow(rec))
}

// NextID deriva el siguiente ID de transacción del contenido actual de la hoja:
// max(ID) + 1, o 1 si está vacía o sin IDs parseables. Marca de agua alta;
// los huecos dejados por escrituras fallidas no se reutilizan.
func (r *TransactionRepo) NextID() (int64, error) {
	rows := r.wb.readRows(r.wb.TransactionsSheet())
	var max int64
	for _, row := range rows {
		if id := parseInt(row[0]); id > max {
			max = id
		}
	}
	return max + 1, nil
}

// Columnas: transaction_id, timestamp, product_id, product_name, product_type,
// movement_type, quantity, unit_value, total_value.

func marshalTransactionRow(rec *entity.TransactionRecord) []interface{} {
	return []interface{}{
		rec.ID,
		formatTime(rec.Timestamp),
		rec.ProductID,
		rec.ProductName,
		rec.ProductType,
		rec.Type,
		rec.Quantity,
		rec.UnitValue.InexactFloat64(),
		rec.TotalValue.InexactFloat64(),
	}
}

func unmarshalTransactionRow(row []string) entity.TransactionRecord {
	return entity.TransactionRecord{
		ID:          parseInt(row[0]),
		Timestamp:   parseTime(row[1]),
		ProductID:   parseInt(row[2]),
		ProductName: strings.TrimSpace(row[3]),
		ProductType: strings.TrimSpace(row[4]),
		Type:        strings.TrimSpace(row[5]),
		Quantity:    parseInt(row[6]),
		UnitValue:   parseDecimal(row[7]),
		TotalValue:  parseDecimal(row[8]),
	}
}
