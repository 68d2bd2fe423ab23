package excel

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una operación completa con acceso exclusivo al workbook.
// El medio no tiene transacciones reales: la pseudo-transacción es un lock global
// de proceso que serializa las dos reescrituras de hoja de cada operación, de modo
// que dos peticiones concurrentes no puedan pisarse el read-modify-write.
// No protege contra escritores en otros procesos.
type TxRunner struct {
	wb    *Workbook
	stock *StockRepo
	tx    *TransactionRepo
}

// NewTxRunner construye el runner sobre el workbook y sus repositorios.
func NewTxRunner(wb *Workbook, stock *StockRepo, tx *TransactionRepo) *TxRunner {
	return &TxRunner{wb: wb, stock: stock, tx: tx}
}

// Run toma el lock global, garantiza el workbook inicializado y ejecuta fn con
// los repositorios. Un error de fn se propaga tal cual; no hay rollback posible
// sobre este medio, por eso un fallo a mitad de operación puede dejar las hojas
// inconsistentes y se reporta en vez de recuperarse en silencio.
func (r *TxRunner) Run(ctx context.Context, fn func(stockRepo repository.StockRepository, txRepo repository.TransactionRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.wb.mu.Lock()
	defer r.wb.mu.Unlock()

	if err := r.wb.ensureInitialized(); err != nil {
		return err
	}
	return fn(r.stock, r.tx)
}
