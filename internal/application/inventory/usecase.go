package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/control-stock-api/internal/application/dto"
	"github.com/tu-usuario/control-stock-api/internal/domain"
	"github.com/tu-usuario/control-stock-api/internal/domain/entity"
	"github.com/tu-usuario/control-stock-api/internal/domain/repository"
)

// MovementEngine aplica movimientos de stock (ENTRY, EXIT, ADJUSTMENT) de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Es el único camino que modifica Product.Quantity.
type MovementEngine struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewMovementEngine construye el motor de movimientos.
func NewMovementEngine(txRunner TxRunner, productRepo repository.ProductRepository) *MovementEngine {
	return &MovementEngine{
		txRunner:    txRunner,
		productRepo: productRepo,
	}
}

// MovementInput entrada para aplicar un movimiento de stock.
// Quantity es la magnitud para ENTRY/EXIT (> 0) y el valor objetivo para ADJUSTMENT (>= 0,
// el ajuste a exactamente cero debe ser representable).
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int64
	UserID    string // vacío para movimientos del sistema
	Reason    string
}

// Apply valida el movimiento, bloquea la fila del producto dentro de una transacción,
// calcula el nuevo saldo y confirma asiento + saldo como una unidad atómica.
// Devuelve el snapshot actualizado del producto o un error tipado del dominio.
func (uc *MovementEngine) Apply(ctx context.Context, input MovementInput) (*dto.ProductStockResponse, error) {
	// Validación barata antes de tomar cualquier bloqueo
	switch input.Type {
	case entity.MovementTypeENTRY, entity.MovementTypeEXIT:
		if input.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	case entity.MovementTypeADJUSTMENT:
		if input.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}

	// El producto debe existir (rechazo pre-bloqueo)
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	now := time.Now()
	var snapshot *dto.ProductStockResponse

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: dos movimientos sobre el mismo producto
		// no pueden leer el mismo saldo y confirmar ambos (lost update)
		locked, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrProductNotFound
		}

		balanceBefore := locked.Quantity
		var newBalance int64
		switch input.Type {
		case entity.MovementTypeENTRY:
			newBalance = balanceBefore + input.Quantity
		case entity.MovementTypeEXIT:
			newBalance = balanceBefore - input.Quantity
			if newBalance < 0 {
				// Nada se escribió todavía: no hace falta rollback de datos
				return &domain.InsufficientStockError{Available: balanceBefore}
			}
		case entity.MovementTypeADJUSTMENT:
			newBalance = input.Quantity
		}

		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     input.ProductID,
			Type:          input.Type,
			Quantity:      input.Quantity,
			BalanceBefore: balanceBefore,
			Reason:        input.Reason,
			CreatedBy:     input.UserID,
			RecordedAt:    now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(input.ProductID, newBalance); err != nil {
			return err
		}

		snapshot = &dto.ProductStockResponse{
			ID:       locked.ID,
			Name:     locked.Name,
			Quantity: newBalance,
			MinStock: locked.MinStock,
			LowStock: newBalance < locked.MinStock,
		}
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		// Fallo de almacenamiento: la transacción hizo rollback, no quedó estado parcial.
		// El caller puede reintentar el Apply completo.
		return nil, &domain.CommitError{Err: err}
	}
	return snapshot, nil
}

// isDomainError distingue los errores de negocio de los fallos de almacenamiento.
func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrProductNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrInvalidQuantity,
		domain.ErrInsufficientStock,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
