package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/control-stock-api/internal/application/dto"
	"github.com/tu-usuario/control-stock-api/internal/domain"
	"github.com/tu-usuario/control-stock-api/internal/domain/entity"
	"github.com/tu-usuario/control-stock-api/internal/domain/repository"
)

// LedgerQueryUseCase consultas de solo lectura sobre el libro de movimientos.
// ProductLedger lee producto y movimientos dentro de una misma transacción para
// obtener una vista consistente: nunca se observa un asiento cuyo saldo pareado
// aún no se confirmó.
type LedgerQueryUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
}

// NewLedgerQueryUseCase construye el caso de uso de consultas.
func NewLedgerQueryUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{txRunner: txRunner, movRepo: movRepo}
}

// ProductLedger devuelve el snapshot del producto (con flag de stock bajo) y sus
// movimientos ordenados del más reciente al más antiguo.
func (uc *LedgerQueryUseCase) ProductLedger(ctx context.Context, productID string, page dto.PageRequest) (*dto.ProductLedgerResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()

	var resp *dto.ProductLedgerResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		movements, err := movRepo.ListByProduct(productID, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		total, err := movRepo.CountByProduct(productID)
		if err != nil {
			return err
		}
		resp = &dto.ProductLedgerResponse{
			Product: dto.ProductStockResponse{
				ID:       product.ID,
				Name:     product.Name,
				Quantity: product.Quantity,
				MinStock: product.MinStock,
				LowStock: product.LowStock(),
			},
			Movements: toMovementResponses(movements),
			Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListMovements lista movimientos globales en un rango de fechas (paginado).
func (uc *LedgerQueryUseCase) ListMovements(ctx context.Context, from, to *time.Time, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	movements, err := uc.movRepo.List(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

func toMovementResponses(movements []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			BalanceBefore: m.BalanceBefore,
			BalanceAfter:  m.BalanceAfter(),
			Reason:        m.Reason,
			CreatedBy:     m.CreatedBy,
			RecordedAt:    m.RecordedAt,
		})
	}
	return out
}
