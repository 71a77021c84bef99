package order

import (
	"context"

	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	domorder "github.com/tu-usuario/tienda-api/internal/domain/order"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
	"github.com/tu-usuario/tienda-api/pkg/logger"
)

// Workflow es la máquina de estados de órdenes:
//
//	pending -> paid | cancelled
//	paid    -> fulfilled | cancelled
//
// Coordina el libro de inventario: reserva al crear, devuelve stock al
// cancelar una orden pendiente o al borrarla.
type Workflow struct {
	txRunner  TxRunner
	ledger    StockLedger
	catalog   Catalog
	orderRepo repository.OrderRepository
	log       *logger.Logger
}

// NewWorkflow construye el workflow de órdenes.
func NewWorkflow(txRunner TxRunner, ledger StockLedger, catalog Catalog, orderRepo repository.OrderRepository, log *logger.Logger) *Workflow {
	return &Workflow{txRunner: txRunner, ledger: ledger, catalog: catalog, orderRepo: orderRepo, log: log}
}

// GetByID obtiene una orden con sus líneas. Proyección de solo lectura.
func (w *Workflow) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	ord, err := w.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	return ord, nil
}

// ListByCustomer lista las órdenes de un cliente con paginación.
func (w *Workflow) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Order, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	return w.orderRepo.ListByCustomer(customerID, limit, offset)
}

// List lista todas las órdenes con paginación.
func (w *Workflow) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return w.orderRepo.List(limit, offset)
}

// UpdateStatus valida la transición contra la tabla de estados y la aplica
// con compare-and-swap sobre el estado actual. Al cancelar una orden pendiente
// devuelve el stock: cada reserva comprometida pasa a released (CAS por fila)
// y su cantidad se reincrementa, todo dentro de la misma transacción.
func (w *Workflow) UpdateStatus(ctx context.Context, orderID, newStatus string) (*entity.Order, error) {
	ord, err := w.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := domorder.CanTransition(ord.Status, newStatus); err != nil {
		return nil, err
	}

	from := ord.Status
	err = w.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.SaleRepository,
		resRepo repository.ReservationRepository,
		invRepo repository.InventoryRepository,
		_ repository.CartRepository,
	) error {
		ok, err := orderRepo.UpdateStatusIf(orderID, from, newStatus)
		if err != nil {
			return err
		}
		if !ok {
			// Otra transición ganó entre la lectura y el CAS.
			return domain.ErrConflict
		}
		if domorder.RestoresStock(from, newStatus) {
			return restoreStock(resRepo, invRepo, orderID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ord.Status = newStatus
	return ord, nil
}

// Delete elimina una orden, sus líneas y sus ventas, devolviendo el stock.
// Solo permitido mientras la orden está pending; una vez paid o fulfilled
// retorna ErrConflict.
func (w *Workflow) Delete(ctx context.Context, orderID string) error {
	ord, err := w.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if ord.Status != entity.OrderStatusPending {
		return domain.ErrConflict
	}
	return w.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		saleRepo repository.SaleRepository,
		resRepo repository.ReservationRepository,
		invRepo repository.InventoryRepository,
		_ repository.CartRepository,
	) error {
		if err := restoreStock(resRepo, invRepo, orderID); err != nil {
			return err
		}
		// Las reservas referencian la orden por FK; hay que borrarlas antes
		// que la orden o el DELETE falla con foreign_key_violation.
		if err := resRepo.DeleteByOrder(orderID); err != nil {
			return err
		}
		if err := saleRepo.DeleteByOrder(orderID); err != nil {
			return err
		}
		return orderRepo.Delete(orderID)
	})
}

// restoreStock devuelve al inventario las reservas comprometidas de una orden.
// El CAS committed -> released por reserva garantiza que dos restauraciones
// concurrentes no reincrementen dos veces la misma cantidad.
func restoreStock(resRepo repository.ReservationRepository, invRepo repository.InventoryRepository, orderID string) error {
	reservations, err := resRepo.ListByOrder(orderID)
	if err != nil {
		return err
	}
	for _, res := range reservations {
		ok, err := resRepo.UpdateStatusIf(res.Token, entity.ReservationStatusCommitted, entity.ReservationStatusReleased)
		if err != nil {
			return err
		}
		if !ok {
			continue // ya devuelta por otra vía
		}
		if err := invRepo.Increment(res.ProductID, res.Quantity); err != nil {
			return err
		}
	}
	return nil
}
