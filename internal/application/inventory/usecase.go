package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// MovementUseCase registra entradas y salidas de stock. Ambas operaciones siguen
// la misma forma dentro de TxRunner.Run: cargar la tabla de stock, localizar o
// crear la fila del producto, validar, mutar en memoria, persistir la tabla de
// stock y agregar el movimiento espejo al histórico. Las dos escrituras son
// secuenciales y no atómicas entre sí; el lock global evita que otra operación
// del proceso se intercale.
type MovementUseCase struct {
	runner TxRunner
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(runner TxRunner) *MovementUseCase {
	return &MovementUseCase{runner: runner}
}

// MovementInput entrada para registrar un movimiento.
// UnitValue es obligatorio solo en la primera entrada de un producto nuevo;
// en salidas se ignora. Date en cero se sustituye por time.Now().
type MovementInput struct {
	ProductName string
	ProductType string
	Quantity    int64
	UnitValue   *decimal.Decimal
	Date        time.Time
}

func (in MovementInput) validate() error {
	if strings.TrimSpace(in.ProductName) == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if in.UnitValue != nil && !in.UnitValue.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// findByName localiza la fila por nombre normalizado (case-insensitive).
// El nombre es la clave autoritativa; un ID suministrado por el caller no se
// usa nunca como clave de búsqueda.
func findByName(items []entity.StockItem, name string) int {
	for i := range items {
		if items[i].MatchesName(name) {
			return i
		}
	}
	return -1
}

// RegisterEntry registra una entrada: suma cantidad a la fila existente (con
// posible actualización del valor unitario) o crea la fila si el producto no
// existía. Devuelve el snapshot resultante de la fila de stock.
func (uc *MovementUseCase) RegisterEntry(ctx context.Context, in MovementInput) (*entity.StockItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	when := in.Date
	if when.IsZero() {
		when = time.Now()
	}

	var result entity.StockItem
	err := uc.runner.Run(ctx, func(stockRepo repository.StockRepository, txRepo repository.TransactionRepository) error {
		items, err := stockRepo.List()
		if err != nil {
			return err
		}

		var unitValue decimal.Decimal
		idx := findByName(items, in.ProductName)
		if idx >= 0 {
			it := &items[idx]
			unitValue = it.UnitValue
			if in.UnitValue != nil {
				// Cada entrada puede sobrescribir el valor unitario vigente
				unitValue = *in.UnitValue
				it.UnitValue = unitValue
			}
			it.Quantity += in.Quantity
			if t := strings.TrimSpace(in.ProductType); t != "" {
				it.Type = t
			}
			it.UpdatedAt = when
			it.Recalculate()
		} else {
			if in.UnitValue == nil {
				return domain.ErrUnitValueRequired
			}
			unitValue = *in.UnitValue
			item := entity.StockItem{
				ProductID: entity.NextProductID(items),
				Name:      strings.TrimSpace(in.ProductName),
				Type:      strings.TrimSpace(in.ProductType),
				UnitValue: unitValue,
				Quantity:  in.Quantity,
				UpdatedAt: when,
			}
			item.Recalculate()
			items = append(items, item)
			idx = len(items) - 1
		}

		if err := stockRepo.ReplaceAll(items); err != nil {
			return err
		}
		if err := appendMovement(txRepo, &items[idx], entity.MovementTypeEntry, in.Quantity, unitValue, when); err != nil {
			return err
		}
		result = items[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterExit registra una salida: descuenta cantidad de la fila existente.
// Falla con ErrNotFound si el producto no existe y con ErrInsufficientStock si
// la cantidad disponible es menor que la solicitada; las salidas nunca llevan
// la cantidad por debajo de cero ni modifican el valor unitario.
func (uc *MovementUseCase) RegisterExit(ctx context.Context, in MovementInput) (*entity.StockItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	when := in.Date
	if when.IsZero() {
		when = time.Now()
	}

	var result entity.StockItem
	err := uc.runner.Run(ctx, func(stockRepo repository.StockRepository, txRepo repository.TransactionRepository) error {
		items, err := stockRepo.List()
		if err != nil {
			return err
		}

		idx := findByName(items, in.ProductName)
		if idx < 0 {
			return domain.ErrNotFound
		}
		it := &items[idx]
		if it.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		// El valor unitario al momento de la salida; las salidas no lo tocan
		unitValue := it.UnitValue

		it.Quantity -= in.Quantity
		it.UpdatedAt = when
		it.Recalculate()

		if err := stockRepo.ReplaceAll(items); err != nil {
			return err
		}
		if err := appendMovement(txRepo, it, entity.MovementTypeExit, in.Quantity, unitValue, when); err != nil {
			return err
		}
		result = *it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// appendMovement construye el registro espejo del movimiento con un ID fresco
// y lo agrega al histórico. Segunda escritura de la operación: si falla, la
// tabla de stock ya quedó persistida y el error se propaga sin recuperación.
func appendMovement(txRepo repository.TransactionRepository, it *entity.StockItem, movType string, qty int64, unitValue decimal.Decimal, when time.Time) error {
	id, err := txRepo.NextID()
	if err != nil {
		return err
	}
	rec := &entity.TransactionRecord{
		ID:          id,
		Timestamp:   when,
		ProductID:   it.ProductID,
		ProductName: it.Name,
		ProductType: it.Type,
		Type:        movType,
		Quantity:    qty,
		UnitValue:   unitValue,
		TotalValue:  unitValue.Mul(decimal.NewFromInt(qty)),
	}
	return txRepo.Append(rec)
}
