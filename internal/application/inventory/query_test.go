package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// seedHistory registra un histórico con fechas y tipos de producto variados.
func seedHistory(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()

	movements := []inventory.MovementInput{
		{ProductName: "Widget", ProductType: "ferretería", Quantity: 10, UnitValue: dec("2.50"), Date: date(2023, 12, 20)},
		{ProductName: "Widget", ProductType: "ferretería", Quantity: 5, Date: date(2024, 1, 5)},
		{ProductName: "Cable", ProductType: "eléctrico", Quantity: 30, UnitValue: dec("0.80"), Date: date(2024, 1, 15)},
		{ProductName: "Widget", ProductType: "ferretería", Quantity: 2, Date: date(2024, 1, 31)},
		{ProductName: "Cable", ProductType: "eléctrico", Quantity: 4, Date: date(2024, 2, 10)},
	}
	for _, in := range movements {
		_, err := f.movements.RegisterEntry(ctx, in)
		require.NoError(t, err)
	}
}

// Listado de stock sobre tabla vacía: lista vacía, no error.
func TestListStock_TablaVacia(t *testing.T) {
	f := newFixture(t)

	items, err := f.queries.ListStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

// Sin filtros se devuelve el histórico completo en orden de inserción.
func TestListTransactions_SinFiltros(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)

	recs, err := f.queries.ListTransactions(context.Background(), repository.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, recs, 5)
	for i, rec := range recs {
		assert.Equal(t, int64(i+1), rec.ID, "el orden almacenado es el orden de registro")
	}
}

// Rango de fechas inclusivo: quedan solo los movimientos dentro de [start, end],
// en su orden original.
func TestListTransactions_RangoDeFechas(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)

	start := date(2024, 1, 1)
	end := date(2024, 1, 31)
	recs, err := f.queries.ListTransactions(context.Background(), repository.TransactionFilter{
		Start: &start,
		End:   &end,
	})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, int64(2), recs[0].ID)
	assert.Equal(t, int64(3), recs[1].ID)
	assert.Equal(t, int64(4), recs[2].ID, "el límite superior es inclusivo")
}

// Filtro por tipo de producto: igualdad case-insensitive, combinable con fechas.
func TestListTransactions_PorTipoDeProducto(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)
	ctx := context.Background()

	recs, err := f.queries.ListTransactions(ctx, repository.TransactionFilter{ProductType: "ELÉCTRICO"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, rec := range recs {
		assert.Equal(t, "Cable", rec.ProductName)
	}

	start := date(2024, 2, 1)
	recs, err = f.queries.ListTransactions(ctx, repository.TransactionFilter{
		Start:       &start,
		ProductType: "eléctrico",
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(5), recs[0].ID)
}

// Un filtro que no coincide con nada devuelve lista vacía, no error.
func TestListTransactions_SinCoincidencias(t *testing.T) {
	f := newFixture(t)
	seedHistory(t, f)

	recs, err := f.queries.ListTransactions(context.Background(), repository.TransactionFilter{ProductType: "perecedero"})
	require.NoError(t, err)
	assert.Empty(t, recs)
}
