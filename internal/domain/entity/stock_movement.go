package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeENTRY      = "ENTRY"      // entrada: suma Quantity al stock
	MovementTypeEXIT       = "EXIT"       // salida: resta Quantity; falla si quedaría negativo
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste: fija el stock en Quantity (valor absoluto, no delta)
)

// StockMovement representa un asiento del libro de movimientos de un producto.
// Una vez confirmado es inmutable: nunca se edita ni se borra (integridad de auditoría).
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string
	Quantity      int64 // magnitud para ENTRY/EXIT; valor objetivo para ADJUSTMENT
	BalanceBefore int64 // stock del producto justo antes de confirmar este movimiento
	Reason        string
	CreatedBy     string // UserID; vacío para movimientos generados por el sistema
	RecordedAt    time.Time
}

// SignedDelta devuelve el cambio efectivo que este movimiento aplicó al stock.
// Para ADJUSTMENT el delta depende del saldo anterior.
func (m *StockMovement) SignedDelta() int64 {
	switch m.Type {
	case MovementTypeENTRY:
		return m.Quantity
	case MovementTypeEXIT:
		return -m.Quantity
	case MovementTypeADJUSTMENT:
		return m.Quantity - m.BalanceBefore
	}
	return 0
}

// BalanceAfter devuelve el stock resultante tras aplicar este movimiento.
func (m *StockMovement) BalanceAfter() int64 {
	return m.BalanceBefore + m.SignedDelta()
}
