package excel_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/excel"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testStockSheet = "CurrentStock"
	testTxSheet    = "TransactionHistory"
)

type testEnv struct {
	path   string
	wb     *excel.Workbook
	stock  *excel.StockRepo
	tx     *excel.TransactionRepo
	runner *excel.TxRunner
}

// newTestEnv crea un workbook inicializado en un directorio temporal con sus
// repositorios y runner.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "estoque.xlsx")
	wb := excel.NewWorkbook(config.StorageConfig{
		FilePath:          path,
		StockSheet:        testStockSheet,
		TransactionsSheet: testTxSheet,
	}, logger.Nop())
	require.NoError(t, wb.EnsureInitialized())

	stock := excel.NewStockRepository(wb)
	tx := excel.NewTransactionRepository(wb)
	return &testEnv{
		path:   path,
		wb:     wb,
		stock:  stock,
		tx:     tx,
		runner: excel.NewTxRunner(wb, stock, tx),
	}
}

func (e *testEnv) run(t *testing.T, fn func(stockRepo repository.StockRepository, txRepo repository.TransactionRepository) error) {
	t.Helper()
	require.NoError(t, e.runner.Run(context.Background(), fn))
}

func testItem(id int64, name string, unitValue string, qty int64) entity.StockItem {
	it := entity.StockItem{
		ProductID: id,
		Name:      name,
		Type:      "general",
		UnitValue: decimal.RequireFromString(unitValue),
		Quantity:  qty,
		UpdatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	it.Recalculate()
	return it
}

// ──────────────────────────────────────────────────────────────────────────────
// Inicialización
// ──────────────────────────────────────────────────────────────────────────────

// La inicialización debe crear ambas hojas con sus cabeceras y ser idempotente:
// repetirla nunca duplica hojas ni destruye filas existentes.
func TestEnsureInitialized_Idempotente(t *testing.T) {
	env := newTestEnv(t)

	env.run(t, func(stockRepo repository.StockRepository, _ repository.TransactionRepository) error {
		return stockRepo.ReplaceAll([]entity.StockItem{testItem(1, "Widget", "2.5", 10)})
	})

	require.NoError(t, env.wb.EnsureInitialized())
	require.NoError(t, env.wb.EnsureInitialized())

	f, err := excelize.OpenFile(env.path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Len(t, sheets, 2, "no deben duplicarse hojas")
	assert.Contains(t, sheets, testStockSheet)
	assert.Contains(t, sheets, testTxSheet)

	var items []entity.StockItem
	env.run(t, func(stockRepo repository.StockRepository, _ repository.TransactionRepository) error {
		var err error
		items, err = stockRepo.List()
		return err
	})
	require.Len(t, items, 1, "las filas existentes deben sobrevivir la re-inicialización")
	assert.Equal(t, "Widget", items[0].Name)
}

// Un archivo existente al que le falta una de las dos hojas debe completarse
// preservando las hojas ajenas y sus datos.
func TestEnsureInitialized_AgregaHojaAusente(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estoque.xlsx")

	// Archivo preexistente con una hoja ajena y sin las hojas canónicas
	f := excelize.NewFile()
	_, err := f.NewSheet("Notas")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Notas", "A1", &[]interface{}{"recordatorio", "revisar stock"}))
	require.NoError(t, f.DeleteSheet("Sheet1"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb := excel.NewWorkbook(config.StorageConfig{
		FilePath:          path,
		StockSheet:        testStockSheet,
		TransactionsSheet: testTxSheet,
	}, logger.Nop())
	require.NoError(t, wb.EnsureInitialized())

	check, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer check.Close()

	assert.ElementsMatch(t, []string{"Notas", testStockSheet, testTxSheet}, check.GetSheetList())

	rows, err := check.GetRows("Notas")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"recordatorio", "revisar stock"}, rows[0], "la hoja ajena debe quedar intacta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip y preservación
// ──────────────────────────────────────────────────────────────────────────────

// Escribir una tabla y volver a leerla debe devolver las mismas filas lógicas.
func TestStockRepo_RoundTrip(t *testing.T) {
	env := newTestEnv(t)

	written := []entity.StockItem{
		testItem(1, "Widget", "2.5", 10),
		testItem(2, "Gadget", "7.25", 3),
	}
	env.run(t, func(stockRepo repository.StockRepository, _ repository.TransactionRepository) error {
		return stockRepo.ReplaceAll(written)
	})

	var got []entity.StockItem
	env.run(t, func(stockRepo repository.StockRepository, _ repository.TransactionRepository) error {
		var err error
		got, err = stockRepo.List()
		return err
	})

	require.Len(t, got, 2)
	for i, it := range got {
		assert.Equal(t, written[i].ProductID, it.ProductID)
		assert.Equal(t, written[i].Name, it.Name)
		assert.Equal(t, written[i].Quantity, it.Quantity)
		assert.True(t, written[i].UnitValue.Equal(it.UnitValue),
			"unit_value: esperado %s, leído %s", written[i].UnitValue, it.UnitValue)
		assert.True(t, written[i].TotalValue.Equal(it.TotalValue),
			"total_value: esperado %s, leído %s", written[i].TotalValue, it.TotalValue)
		assert.True(t, written[i].UpdatedAt.Equal(it.UpdatedAt))
	}
}

// Escribir la tabla de stock nunca debe alterar el contenido almacenado del
// histórico, y viceversa.
func TestWorkbook_EscribirUnaHojaPreservaLaOtra(t *testing.T) {
	env := newTestEnv(t)

	rec := &entity.TransactionRecord{
		ID:          1,
		Timestamp:   time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		ProductID:   1,
		ProductName: "Widget",
		ProductType: "general",
		Type:        entity.MovementTypeEntry,
		Quantity:    10,
		UnitValue:   decimal.RequireFromString("2.5"),
		TotalValue:  decimal.RequireFromString("25"),
	}
	env.run(t, func(_ repository.StockRepository, txRepo repository.TransactionRepository) error {
		return txRepo.Append(rec)
	})

	// Varias reescrituras de la hoja de stock
	for i := int64(1); i <= 3; i++ {
		env.run(t, func(stockRepo repository.StockRepository, _ repository.TransactionRepository) error {
			return stockRepo.ReplaceAll([]entity.StockItem{testItem(1, "Widget", "2.5", 10*i)})
		})
	}

	var recs []entity.TransactionRecord
	env.run(t, func(_ repository.StockRepository, txRepo repository.TransactionRepository) error {
		var err error
		recs, err = txRepo.List()
		return err
	})
	require.Len(t, recs, 1)
	assert.Equal(t, int64(1), recs[0].ID)
	assert.Equal(t, "Widget", recs[0].ProductName)
	assert.Equal(t, entity.MovementTypeEntry, recs[0].Type)
	assert.True(t, recs[0].TotalValue.Equal(decimal.RequireFromString("25")))
	assert.True(t, recs[0].Timestamp.Equal(rec.Timestamp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Generación de identificadores
// ──────────────────────────────────────────────────────────────────────────────

// NextID es "marca de agua alta más uno": 1 sobre tabla vacía, max+1 después,
// sin reutilizar huecos.
func TestTransactionRepo_NextID(t *testing.T) {
	env := newTestEnv(t)

	env.run(t, func(_ repository.StockRepository, txRepo repository.TransactionRepository) error {
		id, err := txRepo.NextID()
		require.NoError(t, err)
		assert.Equal(t, int64(1), id, "tabla vacía debe dar 1")
		return nil
	})

	// Histórico con hueco: IDs 3 y 7
	for _, id := range []int64{3, 7} {
		env.run(t, func(_ repository.StockRepository, txRepo repository.TransactionRepository) error {
			return txRepo.Append(&entity.TransactionRecord{
				ID:          id,
				Timestamp:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				ProductID:   1,
				ProductName: "Widget",
				Type:        entity.MovementTypeEntry,
				Quantity:    1,
				UnitValue:   decimal.New(1, 0),
				TotalValue:  decimal.New(1, 0),
			})
		})
	}

	env.run(t, func(_ repository.StockRepository, txRepo repository.TransactionRepository) error {
		id, err := txRepo.NextID()
		require.NoError(t, err)
		assert.Equal(t, int64(8), id, "debe ser max+1, no el primer hueco libre")
		return nil
	})
}

func TestNextProductID(t *testing.T) {
	assert.Equal(t, int64(1), entity.NextProductID(nil), "tabla vacía debe dar 1")
	items := []entity.StockItem{testItem(1, "Widget", "2.5", 10), testItem(4, "Gadget", "1", 1)}
	assert.Equal(t, int64(5), entity.NextProductID(items))
}
