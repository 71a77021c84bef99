package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-api/internal/application/inventory"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (mutex por repo, mutaciones condicionales atómicas como en
// los UPDATE condicionales reales)
// ──────────────────────────────────────────────────────────────────────────────

type memInventoryRepo struct {
	mu        sync.Mutex
	byProduct map[string]*entity.InventoryRecord
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{byProduct: make(map[string]*entity.InventoryRecord)}
}

func (m *memInventoryRepo) seed(productID string, qty int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byProduct[productID] = &entity.InventoryRecord{
		ID:        "inv-" + productID,
		ProductID: productID,
		Quantity:  qty,
	}
}

func (m *memInventoryRepo) quantity(productID string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byProduct[productID]
	if !ok {
		return -1
	}
	return rec.Quantity
}

func (m *memInventoryRepo) Create(record *entity.InventoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byProduct[record.ProductID]; ok {
		return domain.ErrDuplicate
	}
	cp := *record
	m.byProduct[record.ProductID] = &cp
	return nil
}

func (m *memInventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.byProduct {
		if rec.ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memInventoryRepo) GetByProduct(productID string) (*entity.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byProduct[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memInventoryRepo) List(limit, offset int) ([]*entity.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.InventoryRecord, 0, len(m.byProduct))
	for _, rec := range m.byProduct {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memInventoryRepo) UpdateLocation(id, warehouseLocation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.byProduct {
		if rec.ID == id {
			rec.WarehouseLocation = warehouseLocation
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memInventoryRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for pid, rec := range m.byProduct {
		if rec.ID == id {
			delete(m.byProduct, pid)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memInventoryRepo) DecrementIfAvailable(productID string, qty int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byProduct[productID]
	if !ok || rec.Quantity < qty {
		return false, nil
	}
	rec.Quantity -= qty
	return true, nil
}

func (m *memInventoryRepo) Increment(productID string, qty int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byProduct[productID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Quantity += qty
	return nil
}

func (m *memInventoryRepo) AdjustIfNonNegative(productID string, delta int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byProduct[productID]
	if !ok || rec.Quantity+delta < 0 {
		return false, nil
	}
	rec.Quantity += delta
	return true, nil
}

type memReservationRepo struct {
	mu      sync.Mutex
	byToken map[string]*entity.Reservation
}

func newMemReservationRepo() *memReservationRepo {
	return &memReservationRepo{byToken: make(map[string]*entity.Reservation)}
}

func (m *memReservationRepo) Create(res *entity.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byToken[res.Token]; ok {
		return domain.ErrDuplicate
	}
	if res.IdempotencyKey != "" {
		for _, existing := range m.byToken {
			if existing.IdempotencyKey == res.IdempotencyKey {
				return domain.ErrDuplicate
			}
		}
	}
	cp := *res
	m.byToken[res.Token] = &cp
	return nil
}

func (m *memReservationRepo) GetByToken(token string) (*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.byToken[token]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (m *memReservationRepo) GetByIdempotencyKey(key string) (*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, res := range m.byToken {
		if res.IdempotencyKey == key {
			cp := *res
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memReservationRepo) ListByOrder(orderID string) ([]*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Reservation
	for _, res := range m.byToken {
		if res.OrderID == orderID {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memReservationRepo) UpdateStatusIf(token, from, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.byToken[token]
	if !ok || res.Status != from {
		return false, nil
	}
	res.Status = to
	res.UpdatedAt = time.Now()
	return true, nil
}

func (m *memReservationRepo) AttachOrder(token, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.byToken[token]
	if !ok {
		return domain.ErrInvalidToken
	}
	res.OrderID = orderID
	return nil
}

func (m *memReservationRepo) DeleteByOrder(orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, res := range m.byToken {
		if res.OrderID == orderID {
			delete(m.byToken, token)
		}
	}
	return nil
}

// memTxRunner ejecuta la función directamente sobre los fakes: suficiente para
// probar el protocolo, porque las mutaciones de los fakes ya son atómicas.
type memTxRunner struct {
	inv *memInventoryRepo
	res *memReservationRepo
}

func (tx *memTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	resRepo repository.ReservationRepository,
) error) error {
	return fn(tx.inv, tx.res)
}

func newTestLedger() (*inventory.Ledger, *memInventoryRepo, *memReservationRepo) {
	inv := newMemInventoryRepo()
	res := newMemReservationRepo()
	return inventory.NewLedger(&memTxRunner{inv: inv, res: res}, inv, res), inv, res
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserve
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_DescuentaStockYQuedaHeld(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 10)

	res, err := ledger.Reserve(context.Background(), "p1", 3, "")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.NotEmpty(t, res.Token, "la reserva debe tener un token opaco")
	assert.Equal(t, entity.ReservationStatusHeld, res.Status)
	assert.Equal(t, int64(7), inv.quantity("p1"), "el stock se descuenta al reservar, no al comprometer")
}

func TestReserve_StockInsuficienteNoMutaNada(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 2)

	res, err := ledger.Reserve(context.Background(), "p1", 3, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, res)
	assert.Equal(t, int64(2), inv.quantity("p1"), "una reserva fallida no debe tocar el stock")
}

func TestReserve_CantidadExactaDejaCero(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 5)

	_, err := ledger.Reserve(context.Background(), "p1", 5, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), inv.quantity("p1"))
}

func TestReserve_ProductoSinInventario(t *testing.T) {
	ledger, _, _ := newTestLedger()

	_, err := ledger.Reserve(context.Background(), "fantasma", 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserve_EntradaInvalida(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 5)

	_, err := ledger.Reserve(context.Background(), "", 1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.Reserve(context.Background(), "p1", 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.Reserve(context.Background(), "p1", -4, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, int64(5), inv.quantity("p1"))
}

// Reintentar con la misma clave de idempotencia devuelve la reserva original
// sin descontar stock otra vez.
func TestReserve_IdempotenciaPorClave(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 10)

	first, err := ledger.Reserve(context.Background(), "p1", 4, "orden-42:0")
	require.NoError(t, err)

	retry, err := ledger.Reserve(context.Background(), "p1", 4, "orden-42:0")
	require.NoError(t, err)

	assert.Equal(t, first.Token, retry.Token, "el reintento debe devolver la misma reserva")
	assert.Equal(t, int64(6), inv.quantity("p1"), "el stock se descuenta una sola vez")
}

// Propiedad de concurrencia: N reservas en paralelo sobre stock K.
// Exactamente K deben tener éxito y el stock nunca queda negativo.
func TestReserve_ConcurrenciaNoSobrevende(t *testing.T) {
	const stock = 5
	const attempts = 20

	ledger, inv, _ := newTestLedger()
	inv.seed("p1", stock)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Reserve(context.Background(), "p1", 1, "")
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			insufficient++
		}
	}
	assert.Equal(t, stock, ok, "deben tener éxito exactamente tantas reservas como stock había")
	assert.Equal(t, attempts-stock, insufficient)
	assert.Equal(t, int64(0), inv.quantity("p1"), "el stock jamás queda negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit / Release
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_HeldPasaACommitted(t *testing.T) {
	ledger, inv, resRepo := newTestLedger()
	inv.seed("p1", 10)

	res, err := ledger.Reserve(context.Background(), "p1", 3, "")
	require.NoError(t, err)

	require.NoError(t, ledger.Commit(context.Background(), res.Token))

	stored, err := resRepo.GetByToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusCommitted, stored.Status)
	assert.Equal(t, int64(7), inv.quantity("p1"), "commit no vuelve a tocar cantidades")
}

func TestCommit_TokenDesconocido(t *testing.T) {
	ledger, _, _ := newTestLedger()
	assert.ErrorIs(t, ledger.Commit(context.Background(), "no-existe"), domain.ErrInvalidToken)
	assert.ErrorIs(t, ledger.Commit(context.Background(), ""), domain.ErrInvalidToken)
}

func TestCommit_DobleCommitFalla(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 10)

	res, _ := ledger.Reserve(context.Background(), "p1", 2, "")
	require.NoError(t, ledger.Commit(context.Background(), res.Token))
	assert.ErrorIs(t, ledger.Commit(context.Background(), res.Token), domain.ErrInvalidToken)
}

func TestRelease_DevuelveStock(t *testing.T) {
	ledger, inv, resRepo := newTestLedger()
	inv.seed("p1", 10)

	res, _ := ledger.Reserve(context.Background(), "p1", 4, "")
	require.Equal(t, int64(6), inv.quantity("p1"))

	require.NoError(t, ledger.Release(context.Background(), res.Token))
	assert.Equal(t, int64(10), inv.quantity("p1"))

	stored, _ := resRepo.GetByToken(res.Token)
	assert.Equal(t, entity.ReservationStatusReleased, stored.Status)
}

// Liberar dos veces es un no-op: los reintentos duplicados no inflan el stock.
func TestRelease_Idempotente(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 10)

	res, _ := ledger.Reserve(context.Background(), "p1", 4, "")
	require.NoError(t, ledger.Release(context.Background(), res.Token))
	require.NoError(t, ledger.Release(context.Background(), res.Token))
	require.NoError(t, ledger.Release(context.Background(), res.Token))

	assert.Equal(t, int64(10), inv.quantity("p1"), "el stock se devuelve exactamente una vez")
}

func TestRelease_ReservaComprometidaFalla(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 10)

	res, _ := ledger.Reserve(context.Background(), "p1", 4, "")
	require.NoError(t, ledger.Commit(context.Background(), res.Token))

	assert.ErrorIs(t, ledger.Release(context.Background(), res.Token), domain.ErrInvalidToken)
	assert.Equal(t, int64(6), inv.quantity("p1"), "una reserva consumida no devuelve stock")
}

func TestRelease_TokenDesconocido(t *testing.T) {
	ledger, _, _ := newTestLedger()
	assert.ErrorIs(t, ledger.Release(context.Background(), "no-existe"), domain.ErrInvalidToken)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_PositivoYNegativo(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 10)

	require.NoError(t, ledger.Adjust(context.Background(), "p1", 5))
	assert.Equal(t, int64(15), inv.quantity("p1"))

	require.NoError(t, ledger.Adjust(context.Background(), "p1", -15))
	assert.Equal(t, int64(0), inv.quantity("p1"))
}

func TestAdjust_NoDejaNegativo(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 3)

	err := ledger.Adjust(context.Background(), "p1", -4)
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)
	assert.Equal(t, int64(3), inv.quantity("p1"), "un ajuste rechazado no muta nada")
}

func TestAdjust_DeltaCeroEsNoOp(t *testing.T) {
	ledger, inv, _ := newTestLedger()
	inv.seed("p1", 3)
	require.NoError(t, ledger.Adjust(context.Background(), "p1", 0))
	assert.Equal(t, int64(3), inv.quantity("p1"))
}

func TestAdjust_ProductoDesconocido(t *testing.T) {
	ledger, _, _ := newTestLedger()
	assert.ErrorIs(t, ledger.Adjust(context.Background(), "fantasma", 1), domain.ErrNotFound)
}
