package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/control-stock-api/internal/application/dto"
	"github.com/tu-usuario/control-stock-api/internal/application/usecase"
	"github.com/tu-usuario/control-stock-api/internal/domain"
	"github.com/tu-usuario/control-stock-api/internal/domain/entity"
)

// ── Fakes en memoria ─────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	stored, ok := r.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	// El CRUD nunca escribe Quantity: se preserva el valor almacenado
	quantity := stored.Quantity
	cp := *p
	cp.Quantity = quantity
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.LowStock() && p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}
func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64) error {
	r.products[id].Quantity = quantity
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, nil
}
func (r *fakeCategoryRepo) Create(*entity.Category) error                 { return nil }
func (r *fakeCategoryRepo) GetByName(string) (*entity.Category, error)    { return nil, nil }
func (r *fakeCategoryRepo) Update(*entity.Category) error                 { return nil }
func (r *fakeCategoryRepo) List(int, int) ([]*entity.Category, error)     { return nil, nil }
func (r *fakeCategoryRepo) Delete(string) error                           { return nil }

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if s, ok := r.suppliers[id]; ok {
		return s, nil
	}
	return nil, nil
}
func (r *fakeSupplierRepo) Create(*entity.Supplier) error             { return nil }
func (r *fakeSupplierRepo) Update(*entity.Supplier) error             { return nil }
func (r *fakeSupplierRepo) List(int, int) ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Delete(string) error                       { return nil }

func newProductUC() (*usecase.ProductUseCase, *fakeProductRepo) {
	productRepo := newFakeProductRepo()
	categoryRepo := &fakeCategoryRepo{categories: map[string]*entity.Category{
		"cat1": {ID: "cat1", Name: "Abarrotes"},
	}}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		"sup1": {ID: "sup1", Name: "Distribuidora Norte"},
	}}
	return usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo), productRepo
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestProductCreate_StockInicialSiempreCero(t *testing.T) {
	uc, repo := newProductUC()

	resp, err := uc.Create(dto.CreateProductRequest{
		Name:       "Azúcar 1kg",
		CategoryID: "cat1",
		SupplierID: "sup1",
		CostPrice:  decimal.NewFromFloat(1.20),
		SalePrice:  decimal.NewFromFloat(1.80),
		MinStock:   10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Quantity)
	assert.True(t, resp.LowStock) // 0 < 10
	assert.True(t, resp.Active)
	assert.Equal(t, int64(0), repo.products[resp.ID].Quantity)
}

func TestProductCreate_CategoriaObligatoria(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(dto.CreateProductRequest{Name: "Sin categoría"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Categoría fantasma", CategoryID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_ProveedorInexistente(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(dto.CreateProductRequest{
		Name:       "Producto",
		CategoryID: "cat1",
		SupplierID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_PrecioVentaMenorQueCosto(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(dto.CreateProductRequest{
		Name:       "Producto a pérdida",
		CategoryID: "cat1",
		CostPrice:  decimal.NewFromInt(10),
		SalePrice:  decimal.NewFromInt(8),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoTocaElStock(t *testing.T) {
	uc, repo := newProductUC()

	created, err := uc.Create(dto.CreateProductRequest{
		Name:       "Harina 1kg",
		CategoryID: "cat1",
		MinStock:   5,
	})
	require.NoError(t, err)

	// El stock lo mueve el motor, no el CRUD
	require.NoError(t, repo.UpdateQuantity(created.ID, 42))

	name := "Harina de trigo 1kg"
	minStock := int64(8)
	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{
		Name:     &name,
		MinStock: &minStock,
	})
	require.NoError(t, err)
	assert.Equal(t, "Harina de trigo 1kg", updated.Name)
	assert.Equal(t, int64(8), updated.MinStock)
	assert.Equal(t, int64(42), repo.products[created.ID].Quantity)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc, _ := newProductUC()

	name := "x"
	_, err := uc.Update("no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUpdate_MinStockNegativo(t *testing.T) {
	uc, _ := newProductUC()

	created, err := uc.Create(dto.CreateProductRequest{Name: "Sal 500g", CategoryID: "cat1"})
	require.NoError(t, err)

	bad := int64(-1)
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{MinStock: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductList_SoloStockBajo(t *testing.T) {
	uc, repo := newProductUC()

	low, err := uc.Create(dto.CreateProductRequest{Name: "Bajo", CategoryID: "cat1", MinStock: 10})
	require.NoError(t, err)
	ok, err := uc.Create(dto.CreateProductRequest{Name: "Sobrado", CategoryID: "cat1", MinStock: 2})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateQuantity(low.ID, 3))
	require.NoError(t, repo.UpdateQuantity(ok.ID, 50))

	list, err := uc.List(dto.PageRequest{}, true)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Bajo", list.Items[0].Name)
	assert.True(t, list.Items[0].LowStock)
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc, _ := newProductUC()
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrProductNotFound)
}
