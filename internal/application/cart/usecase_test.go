package cart_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-api/internal/application/cart"
	"github.com/tu-usuario/tienda-api/internal/application/dto"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart // por customerID
	lines map[string]*entity.CartLine
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{
		carts: make(map[string]*entity.Cart),
		lines: make(map[string]*entity.CartLine),
	}
}

func (m *memCartRepo) GetOrCreateByCustomer(customerID string) (*entity.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[customerID]; ok {
		cp := *c
		return &cp, nil
	}
	c := &entity.Cart{ID: uuid.New().String(), CustomerID: customerID}
	m.carts[customerID] = c
	cp := *c
	return &cp, nil
}

func (m *memCartRepo) GetByCustomer(customerID string) (*entity.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[customerID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCartRepo) GetLine(cartID, productID string) (*entity.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lines {
		if l.CartID == cartID && l.ProductID == productID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCartRepo) GetLineByID(lineID string) (*entity.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lines[lineID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (m *memCartRepo) UpsertLine(line *entity.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.lines {
		if existing.CartID == line.CartID && existing.ProductID == line.ProductID {
			existing.Quantity += line.Quantity
			existing.UpdatedAt = line.UpdatedAt
			return nil
		}
	}
	cp := *line
	m.lines[line.ID] = &cp
	return nil
}

func (m *memCartRepo) ListLines(cartID string) ([]*entity.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.CartLine
	for _, l := range m.lines {
		if l.CartID == cartID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memCartRepo) DeleteLine(lineID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, lineID)
	return nil
}

func (m *memCartRepo) DeleteLines(cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.lines {
		if l.CartID == cartID {
			delete(m.lines, id)
		}
	}
	return nil
}

type stubCatalog struct {
	products map[string]*entity.Product
}

func (s *stubCatalog) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func newTestCart() (*cart.UseCase, *memCartRepo) {
	repo := newMemCartRepo()
	catalog := &stubCatalog{products: map[string]*entity.Product{
		"p1": {ID: "p1", SKU: "SKU-1", Name: "Café", Price: decimal.RequireFromString("25.50")},
		"p2": {ID: "p2", SKU: "SKU-2", Name: "Azúcar", Price: decimal.RequireFromString("4.00")},
	}}
	return cart.NewUseCase(repo, catalog), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAddItem_CreaCarritoYLinea(t *testing.T) {
	uc, _ := newTestCart()

	line, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, int64(2), line.Quantity)
}

// Agregar el mismo producto dos veces incrementa la cantidad, no duplica la línea.
func TestAddItem_MismoProductoIncrementa(t *testing.T) {
	uc, repo := newTestCart()

	first, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	second, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "debe ser la misma línea")
	assert.Equal(t, int64(5), second.Quantity)

	lines, _ := repo.ListLines(first.CartID)
	assert.Len(t, lines, 1, "una sola línea por producto")
}

// El incremento va dentro del upsert, contra el valor persistido: agregados
// concurrentes del mismo producto no pueden perderse entre un read y un write.
func TestAddItem_ConcurrenteNoPierdeIncrementos(t *testing.T) {
	uc, repo := newTestCart()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cartStored, err := repo.GetByCustomer("cliente-1")
	require.NoError(t, err)
	line, err := repo.GetLine(cartStored.ID, "p1")
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, int64(n), line.Quantity, "cada agregado cuenta exactamente una vez")
}

func TestAddItem_CantidadPorDefectoUno(t *testing.T) {
	uc, _ := newTestCart()

	line, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), line.Quantity)
}

func TestAddItem_ProductoDesconocido(t *testing.T) {
	uc, _ := newTestCart()
	_, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_CantidadNegativa(t *testing.T) {
	uc, _ := newTestCart()
	_, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El carrito no valida disponibilidad: puede contener más de lo que hay en
// stock. La verificación real ocurre al crear la orden.
func TestAddItem_SinValidarStock(t *testing.T) {
	uc, _ := newTestCart()
	line, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 100000})
	require.NoError(t, err)
	assert.Equal(t, int64(100000), line.Quantity)
}

func TestView_TotalesYProductosResueltos(t *testing.T) {
	uc, _ := newTestCart()
	_, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p2", Quantity: 3})
	require.NoError(t, err)

	view, err := uc.View(context.Background(), "cliente-1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)

	// 2*25.50 + 3*4.00 = 63.00
	assert.True(t, decimal.RequireFromString("63.00").Equal(view.Total),
		"total informativo a precios actuales, fue %s", view.Total)
	for _, l := range view.Lines {
		assert.NotEmpty(t, l.ProductName)
		assert.NotEmpty(t, l.SKU)
	}
}

func TestView_SinCarrito(t *testing.T) {
	uc, _ := newTestCart()
	_, err := uc.View(context.Background(), "cliente-sin-carrito")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveLine(t *testing.T) {
	uc, repo := newTestCart()
	line, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1"})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveLine(context.Background(), line.ID))
	lines, _ := repo.ListLines(line.CartID)
	assert.Empty(t, lines)

	assert.ErrorIs(t, uc.RemoveLine(context.Background(), line.ID), domain.ErrNotFound)
}

func TestClear(t *testing.T) {
	uc, repo := newTestCart()
	line, err := uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p1"})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), "cliente-1", dto.AddCartItemRequest{ProductID: "p2"})
	require.NoError(t, err)

	require.NoError(t, uc.Clear(context.Background(), "cliente-1"))
	lines, _ := repo.ListLines(line.CartID)
	assert.Empty(t, lines)

	// Sin carrito es un no-op, no un error.
	require.NoError(t, uc.Clear(context.Background(), "cliente-nuevo"))
}
