package dto

import "time"

// ApplyMovementRequest body para POST /api/inventory/movements.
// Quantity es la magnitud para ENTRY/EXIT y el valor objetivo para ADJUSTMENT.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // ENTRY, EXIT, ADJUSTMENT
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

// ProductStockResponse snapshot del producto tras aplicar un movimiento.
type ProductStockResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	MinStock int64  `json:"min_stock"`
	LowStock bool   `json:"low_stock"`
}

// MovementResponse un asiento del libro de movimientos.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Reason        string    `json:"reason,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// ProductLedgerResponse libro de movimientos de un producto (más reciente primero)
// junto con el snapshot consistente del producto.
type ProductLedgerResponse struct {
	Product   ProductStockResponse `json:"product"`
	Movements []MovementResponse   `json:"movements"`
	Page      PageResponse         `json:"page"`
}
