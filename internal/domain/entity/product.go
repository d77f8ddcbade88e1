package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock actual.
// Quantity es la única fuente de verdad del stock disponible y SOLO la
// modifica el motor de movimientos (nunca el CRUD de productos).
type Product struct {
	ID          string
	Name        string
	Description string
	CategoryID  string // obligatorio; la categoría no puede borrarse mientras existan productos
	SupplierID  string // vacío si no tiene proveedor asignado
	Barcode     string // vacío o único
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	Quantity    int64 // stock actual, nunca negativo
	MinStock    int64 // umbral de reposición
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si el producto está por debajo de su umbral de reposición.
// Es una condición derivada, no se almacena.
func (p *Product) LowStock() bool {
	return p.Quantity < p.MinStock
}

// Profit devuelve la ganancia unitaria (precio de venta menos costo).
func (p *Product) Profit() decimal.Decimal {
	return p.SalePrice.Sub(p.CostPrice)
}

// MarginPct devuelve el margen de ganancia porcentual, redondeado a 2 decimales.
// Retorna 0 si el costo es 0.
func (p *Product) MarginPct() decimal.Decimal {
	if !p.CostPrice.IsPositive() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return p.Profit().Div(p.CostPrice).Mul(hundred).Round(2)
}

// ValidatePrices verifica que el precio de venta no sea menor que el costo.
func (p *Product) ValidatePrices() bool {
	return !p.SalePrice.LessThan(p.CostPrice)
}
