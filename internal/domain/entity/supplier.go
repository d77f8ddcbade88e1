package entity

import "time"

// Supplier representa un proveedor de productos.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	TaxID     string // NIT/CNPJ; vacío o único (no se exige para proveedores informales)
	Contact   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
