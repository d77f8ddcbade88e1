package repository

import (
	"time"

	"github.com/tu-usuario/control-stock-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	CountByProduct(productID string) (int, error)
}
