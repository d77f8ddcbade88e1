package repository

import "github.com/tu-usuario/control-stock-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateQuantity son exclusivos del motor de movimientos y
// deben usarse dentro de una transacción (TxRunner).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateQuantity fija el stock del producto. Solo el motor de movimientos lo llama.
	UpdateQuantity(id string, quantity int64) error
}
