package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función con acceso exclusivo al almacenamiento, pasando
// repositorios atados a esa sección crítica. Es la pseudo-transacción del motor:
// sobre el workbook la implementación es un lock global de proceso; una
// implementación sobre una base de datos real puede sustituirlo por una
// transacción que abarque ambas tablas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
