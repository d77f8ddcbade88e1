package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/control-stock-api/internal/application/dto"
	"github.com/tu-usuario/control-stock-api/internal/application/inventory"
	"github.com/tu-usuario/control-stock-api/internal/domain"
	"github.com/tu-usuario/control-stock-api/internal/domain/entity"
)

func newLedgerQuery(store *memStore) *inventory.LedgerQueryUseCase {
	return inventory.NewLedgerQueryUseCase(&memTxRunner{store: store}, &memMovementRepo{store: store})
}

func seedMovements(t *testing.T, store *memStore, inputs ...inventory.MovementInput) {
	t.Helper()
	engine, _ := newEngine(store)
	for _, in := range inputs {
		_, err := engine.Apply(context.Background(), in)
		require.NoError(t, err)
	}
}

func TestProductLedger_MasRecientePrimeroConSnapshot(t *testing.T) {
	store := newMemStore(productWithStock("p1", 0, 5))
	seedMovements(t, store,
		inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeENTRY, Quantity: 10},
		inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeEXIT, Quantity: 4},
		inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeEXIT, Quantity: 3},
	)

	ledger, err := newLedgerQuery(store).ProductLedger(context.Background(), "p1", dto.PageRequest{})
	require.NoError(t, err)

	// Snapshot consistente con el libro
	assert.Equal(t, int64(3), ledger.Product.Quantity)
	assert.True(t, ledger.Product.LowStock)
	assert.Equal(t, 3, ledger.Page.Total)

	// Más reciente primero
	require.Len(t, ledger.Movements, 3)
	assert.Equal(t, int64(3), ledger.Movements[0].Quantity)
	assert.Equal(t, int64(6), ledger.Movements[0].BalanceBefore)
	assert.Equal(t, int64(3), ledger.Movements[0].BalanceAfter)
	assert.Equal(t, entity.MovementTypeENTRY, ledger.Movements[2].Type)
	assert.Equal(t, int64(0), ledger.Movements[2].BalanceBefore)

	// balance_after de cada asiento encaja con balance_before del siguiente (más nuevo)
	for i := 0; i < len(ledger.Movements)-1; i++ {
		assert.Equal(t, ledger.Movements[i].BalanceBefore, ledger.Movements[i+1].BalanceAfter)
	}
}

func TestProductLedger_Paginado(t *testing.T) {
	store := newMemStore(productWithStock("p1", 0, 0))
	for i := 0; i < 5; i++ {
		seedMovements(t, store, inventory.MovementInput{
			ProductID: "p1", Type: entity.MovementTypeENTRY, Quantity: 1,
		})
	}

	ledger, err := newLedgerQuery(store).ProductLedger(context.Background(), "p1", dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, 5, ledger.Page.Total)
	assert.Equal(t, 2, ledger.Page.Limit)
	require.Len(t, ledger.Movements, 2)
	// Página 2 (desc): saldos previos 2 y 1
	assert.Equal(t, int64(2), ledger.Movements[0].BalanceBefore)
	assert.Equal(t, int64(1), ledger.Movements[1].BalanceBefore)
}

func TestProductLedger_ProductoInexistente(t *testing.T) {
	store := newMemStore()

	_, err := newLedgerQuery(store).ProductLedger(context.Background(), "no-existe", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductLedger_SinMovimientos(t *testing.T) {
	store := newMemStore(productWithStock("p1", 0, 0))

	ledger, err := newLedgerQuery(store).ProductLedger(context.Background(), "p1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, ledger.Movements)
	assert.Equal(t, 0, ledger.Page.Total)
	assert.Equal(t, int64(0), ledger.Product.Quantity)
}

func TestListMovements_FiltraPorRangoDeFechas(t *testing.T) {
	store := newMemStore(productWithStock("p1", 0, 0))
	seedMovements(t, store,
		inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeENTRY, Quantity: 2},
		inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeENTRY, Quantity: 3},
	)

	query := newLedgerQuery(store)

	all, err := query.ListMovements(context.Background(), nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Un rango futuro no devuelve nada
	future := time.Now().Add(time.Hour)
	none, err := query.ListMovements(context.Background(), &future, nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, none)

	// Un rango que termina en el pasado tampoco
	past := time.Now().Add(-time.Hour)
	none, err = query.ListMovements(context.Background(), nil, &past, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, none)
}
