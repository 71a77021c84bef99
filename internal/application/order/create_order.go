package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-api/internal/application/dto"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

// CreateOrder convierte un conjunto de líneas (producto, cantidad) en una
// orden persistida con estado pending:
//
//  1. Valida las líneas (no vacías, cantidades > 0).
//  2. Resuelve el precio actual de cada producto; producto desconocido
//     aborta sin tocar stock.
//  3. Reserva stock línea por línea; si alguna reserva falla por stock
//     insuficiente, libera en orden inverso todas las reservas ya tomadas
//     (rollback por compensación: las reservas entre productos no comparten
//     transacción) y falla nombrando el producto ofensor.
//  4. Total = Σ(precio capturado × cantidad), calculado en el servidor.
//  5. En una sola transacción: persiste la orden y sus líneas con el precio
//     congelado, compromete cada reserva, emite una venta por línea y,
//     si el caller lo pidió, vacía el carrito del cliente.
//
// Si la transacción del paso 5 falla, todas las reservas se liberan: el
// inventario queda exactamente como antes de la llamada.
func (w *Workflow) CreateOrder(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*entity.Order, error) {
	if customerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Resolver precios actuales (solo lectura, nada de stock todavía).
	productsByID := make(map[string]*entity.Product, len(in.Lines))
	for _, line := range in.Lines {
		if _, ok := productsByID[line.ProductID]; ok {
			continue
		}
		product, err := w.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
		}
		productsByID[line.ProductID] = product
	}

	// Reservar línea por línea, con compensación si alguna falla.
	tokens := make([]string, 0, len(in.Lines))
	reserveErr := func() error {
		for i, line := range in.Lines {
			key := ""
			if in.IdempotencyKey != "" {
				key = fmt.Sprintf("%s:%d", in.IdempotencyKey, i)
			}
			res, err := w.ledger.Reserve(ctx, line.ProductID, line.Quantity, key)
			if err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, line.ProductID)
				}
				return err
			}
			tokens = append(tokens, res.Token)
		}
		return nil
	}()
	if reserveErr != nil {
		w.releaseAll(ctx, tokens)
		return nil, reserveErr
	}

	now := time.Now()
	orderID := uuid.New().String()
	total := decimal.Zero
	lines := make([]*entity.OrderLine, 0, len(in.Lines))
	for _, line := range in.Lines {
		price := productsByID[line.ProductID].Price
		total = total.Add(price.Mul(decimal.NewFromInt(line.Quantity)))
		lines = append(lines, &entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     price,
			CreatedAt: now,
		})
	}
	ord := &entity.Order{
		ID:         orderID,
		CustomerID: customerID,
		Status:     entity.OrderStatusPending,
		TotalPrice: total,
		Lines:      lines,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := w.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		saleRepo repository.SaleRepository,
		resRepo repository.ReservationRepository,
		_ repository.InventoryRepository,
		cartRepo repository.CartRepository,
	) error {
		if err := orderRepo.Create(ord); err != nil {
			return err
		}
		for _, token := range tokens {
			if err := w.ledger.CommitInTx(resRepo, token); err != nil {
				return err
			}
			if err := resRepo.AttachOrder(token, orderID); err != nil {
				return err
			}
		}
		for _, line := range lines {
			sale := &entity.Sale{
				ID:          uuid.New().String(),
				ProductID:   line.ProductID,
				OrderID:     orderID,
				Quantity:    line.Quantity,
				TotalAmount: line.Price.Mul(decimal.NewFromInt(line.Quantity)),
				SaleDate:    now,
				CreatedAt:   now,
			}
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
		}
		// Vaciar el carrito es política del caller, no un supuesto del motor.
		if in.ClearCart {
			cart, err := cartRepo.GetByCustomer(customerID)
			if err != nil {
				return err
			}
			if cart != nil {
				return cartRepo.DeleteLines(cart.ID)
			}
		}
		return nil
	})
	if err != nil {
		// La persistencia falló después de reservar: devolver todo el stock.
		w.releaseAll(ctx, tokens)
		return nil, err
	}
	return ord, nil
}

// releaseAll libera reservas en orden inverso al que fueron tomadas.
// Release es idempotente, así que un reintento parcial no duplica stock.
func (w *Workflow) releaseAll(ctx context.Context, tokens []string) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if err := w.ledger.Release(ctx, tokens[i]); err != nil {
			w.log.Error().Err(err).Str("token", tokens[i]).Msg("liberar reserva en compensación")
		}
	}
}
