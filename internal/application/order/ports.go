package order

import (
	"context"

	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de órdenes, ventas, reservas, inventario y carritos.
// Garantiza que persistir la orden, comprometer las reservas y emitir las
// ventas sea todo-o-nada.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		saleRepo repository.SaleRepository,
		resRepo repository.ReservationRepository,
		invRepo repository.InventoryRepository,
		cartRepo repository.CartRepository,
	) error) error
}

// Catalog es la vista de solo lectura del catálogo que consume el workflow
// para capturar precios. GetProduct retorna (nil, nil) si el producto no existe.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
}

// StockLedger es la interfaz del libro de inventario que consume el workflow.
// Reserve/Release corren fuera de la transacción de la orden (compensación
// ordenada entre productos); CommitInTx corre dentro, sobre el repositorio
// de reservas atado a esa transacción.
type StockLedger interface {
	Reserve(ctx context.Context, productID string, qty int64, idempotencyKey string) (*entity.Reservation, error)
	Release(ctx context.Context, token string) error
	CommitInTx(resRepo repository.ReservationRepository, token string) error
}
