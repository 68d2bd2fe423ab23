package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// QueryUseCase proyecciones de solo lectura sobre las dos tablas.
// Pasa por TxRunner para no leer el archivo mientras otra operación lo reescribe.
type QueryUseCase struct {
	runner TxRunner
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(runner TxRunner) *QueryUseCase {
	return &QueryUseCase{runner: runner}
}

// ListStock devuelve el listado completo de stock actual; tabla vacía da lista
// vacía, nunca error.
func (uc *QueryUseCase) ListStock(ctx context.Context) ([]entity.StockItem, error) {
	var items []entity.StockItem
	err := uc.runner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.TransactionRepository) error {
		var err error
		items, err = stockRepo.List()
		return err
	})
	return items, err
}

// ListTransactions devuelve el histórico filtrado, en orden de inserción
// (orden cronológico de registro, no necesariamente de los timestamps si el
// caller los suministró fuera de orden). Los límites de fecha son inclusivos;
// el filtro por tipo de producto compara case-insensitive. Sin filtros no hay
// restricción alguna.
func (uc *QueryUseCase) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]entity.TransactionRecord, error) {
	var all []entity.TransactionRecord
	err := uc.runner.Run(ctx, func(_ repository.StockRepository, txRepo repository.TransactionRepository) error {
		var err error
		all, err = txRepo.List()
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]entity.TransactionRecord, 0, len(all))
	for _, rec := range all {
		if filter.Start != nil && rec.Timestamp.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && rec.Timestamp.After(*filter.End) {
			continue
		}
		if filter.ProductType != "" && !strings.EqualFold(rec.ProductType, filter.ProductType) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
