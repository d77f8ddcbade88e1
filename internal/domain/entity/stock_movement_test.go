package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/control-stock-api/internal/domain/entity"
)

func TestStockMovement_SignedDelta(t *testing.T) {
	entry := &entity.StockMovement{Type: entity.MovementTypeENTRY, Quantity: 5, BalanceBefore: 10}
	assert.Equal(t, int64(5), entry.SignedDelta())
	assert.Equal(t, int64(15), entry.BalanceAfter())

	exit := &entity.StockMovement{Type: entity.MovementTypeEXIT, Quantity: 3, BalanceBefore: 10}
	assert.Equal(t, int64(-3), exit.SignedDelta())
	assert.Equal(t, int64(7), exit.BalanceAfter())

	// Para un ajuste el delta depende del saldo previo
	adj := &entity.StockMovement{Type: entity.MovementTypeADJUSTMENT, Quantity: 4, BalanceBefore: 10}
	assert.Equal(t, int64(-6), adj.SignedDelta())
	assert.Equal(t, int64(4), adj.BalanceAfter())

	adjZero := &entity.StockMovement{Type: entity.MovementTypeADJUSTMENT, Quantity: 0, BalanceBefore: 5}
	assert.Equal(t, int64(-5), adjZero.SignedDelta())
	assert.Equal(t, int64(0), adjZero.BalanceAfter())

	unknown := &entity.StockMovement{Type: "TRANSFER", Quantity: 9, BalanceBefore: 1}
	assert.Equal(t, int64(0), unknown.SignedDelta())
}
