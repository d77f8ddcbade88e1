package inventory_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tu-usuario/control-stock-api/internal/domain"
	"github.com/tu-usuario/control-stock-api/internal/domain/entity"
	"github.com/tu-usuario/control-stock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el motor de movimientos.
//
// memTxRunner reproduce la semántica del TxRunner real: cada Run trabaja sobre
// una copia (la "transacción"), que solo se publica en el store si fn y el
// commit terminan bien. El mutex del store serializa las transacciones igual
// que el FOR UPDATE serializa los movimientos sobre un producto.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *memStore) quantity(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Quantity
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

func (s *memStore) movementsByProduct(id string) []*entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.ProductID == id {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out
}

// txData estado provisional de una transacción.
type txData struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

type memTxRunner struct {
	store      *memStore
	failCommit bool
	runs       int
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.runs++

	tx := &txData{
		products:  make(map[string]*entity.Product, len(r.store.products)),
		movements: append([]*entity.StockMovement(nil), r.store.movements...),
	}
	for id, p := range r.store.products {
		cp := *p
		tx.products[id] = &cp
	}

	if err := fn(&txMovementRepo{tx: tx}, &txProductRepo{tx: tx}); err != nil {
		// Rollback: el estado provisional se descarta
		return err
	}
	if r.failCommit {
		return errors.New("conexión perdida durante commit")
	}
	r.store.products = tx.products
	r.store.movements = tx.movements
	return nil
}

// ── Repositorio de productos atado al store (uso fuera de transacción) ────────

type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(*entity.Product) error                 { return nil }
func (r *memProductRepo) List(int, int) ([]*entity.Product, error)     { return nil, nil }
func (r *memProductRepo) ListLowStock(int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Delete(string) error { return nil }

// GetForUpdate y UpdateQuantity solo tienen sentido dentro de una transacción.
func (r *memProductRepo) GetForUpdate(string) (*entity.Product, error) {
	return nil, errors.New("GetForUpdate fuera de transacción")
}
func (r *memProductRepo) UpdateQuantity(string, int64) error {
	return errors.New("UpdateQuantity fuera de transacción")
}

// ── Repositorios atados a la transacción ─────────────────────────────────────

type txProductRepo struct {
	tx *txData
}

func (r *txProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	if p, ok := r.tx.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *txProductRepo) UpdateQuantity(id string, quantity int64) error {
	p, ok := r.tx.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	return nil
}

func (r *txProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.GetForUpdate(id)
}

func (r *txProductRepo) Create(*entity.Product) error                     { return nil }
func (r *txProductRepo) GetByBarcode(string) (*entity.Product, error)     { return nil, nil }
func (r *txProductRepo) Update(*entity.Product) error                     { return nil }
func (r *txProductRepo) List(int, int) ([]*entity.Product, error)         { return nil, nil }
func (r *txProductRepo) ListLowStock(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *txProductRepo) Delete(string) error                              { return nil }

type txMovementRepo struct {
	tx *txData
}

func (r *txMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.tx.movements = append(r.tx.movements, &cp)
	return nil
}

func (r *txMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.tx.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// ListByProduct devuelve los movimientos del producto, más reciente primero
// (orden inverso de inserción, como el ORDER BY recorded_at DESC real).
func (r *txMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	for i := len(r.tx.movements) - 1; i >= 0; i-- {
		if r.tx.movements[i].ProductID == productID {
			cp := *r.tx.movements[i]
			all = append(all, &cp)
		}
	}
	return paginate(all, limit, offset), nil
}

func (r *txMovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	for i := len(r.tx.movements) - 1; i >= 0; i-- {
		m := r.tx.movements[i]
		if from != nil && m.RecordedAt.Before(*from) {
			continue
		}
		if to != nil && m.RecordedAt.After(*to) {
			continue
		}
		cp := *m
		all = append(all, &cp)
	}
	return paginate(all, limit, offset), nil
}

func (r *txMovementRepo) CountByProduct(productID string) (int, error) {
	count := 0
	for _, m := range r.tx.movements {
		if m.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func paginate(list []*entity.StockMovement, limit, offset int) []*entity.StockMovement {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// memMovementRepo expone el libro del store para consultas fuera de transacción.
type memMovementRepo struct {
	store *memStore
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&txMovementRepo{tx: &txData{movements: r.store.movements}}).GetByID(id)
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&txMovementRepo{tx: &txData{movements: r.store.movements}}).ListByProduct(productID, limit, offset)
}

func (r *memMovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&txMovementRepo{tx: &txData{movements: r.store.movements}}).List(from, to, limit, offset)
}

func (r *memMovementRepo) CountByProduct(productID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&txMovementRepo{tx: &txData{movements: r.store.movements}}).CountByProduct(productID)
}
