package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

// Ledger es el libro de inventario: la única vía para mutar stock.
// Protocolo reserve/commit/release:
//   - Reserve descuenta el stock y deja la reserva en estado held.
//   - Commit la marca consumida (la cantidad ya fue descontada al reservar).
//   - Release devuelve la cantidad al stock; idempotente sobre released.
//
// Cada mutación de cantidad es un UPDATE condicional contra el valor
// persistido actual: dos Reserve concurrentes sobre el mismo producto nunca
// descuentan, en conjunto, más stock del que existía antes de ambos.
type Ledger struct {
	txRunner TxRunner
	invRepo  repository.InventoryRepository
	resRepo  repository.ReservationRepository
}

// NewLedger construye el libro de inventario.
func NewLedger(txRunner TxRunner, invRepo repository.InventoryRepository, resRepo repository.ReservationRepository) *Ledger {
	return &Ledger{txRunner: txRunner, invRepo: invRepo, resRepo: resRepo}
}

// Reserve verifica y descuenta qty en el mismo paso atómico y registra la
// reserva, todo en una transacción. Retorna la reserva con su token.
//
// idempotencyKey (opcional): si ya existe una reserva con esa clave se
// retorna la original sin tocar el stock, para que un reintento del caller
// no reserve dos veces.
func (l *Ledger) Reserve(ctx context.Context, productID string, qty int64, idempotencyKey string) (*entity.Reservation, error) {
	if productID == "" || qty <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if idempotencyKey != "" {
		existing, err := l.resRepo.GetByIdempotencyKey(idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	now := time.Now()
	res := &entity.Reservation{
		Token:          uuid.New().String(),
		ProductID:      productID,
		Quantity:       qty,
		Status:         entity.ReservationStatusHeld,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := l.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		resRepo repository.ReservationRepository,
	) error {
		record, err := invRepo.GetByProduct(productID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		ok, err := invRepo.DecrementIfAvailable(productID, qty)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		return resRepo.Create(res)
	})
	if err != nil {
		// Dos reintentos con la misma clave pueden correr en paralelo: el
		// perdedor choca con el constraint único y retorna la reserva ganadora.
		if errors.Is(err, domain.ErrDuplicate) && idempotencyKey != "" {
			existing, gerr := l.resRepo.GetByIdempotencyKey(idempotencyKey)
			if gerr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	return res, nil
}

// Commit finaliza una reserva: CAS held -> committed, sin cambio de cantidad.
// Falla con ErrInvalidToken si el token no existe o ya fue consumido o liberado.
func (l *Ledger) Commit(ctx context.Context, token string) error {
	return commitWith(l.resRepo, token)
}

// CommitInTx igual que Commit pero sobre el repositorio del caller, para
// comprometer la reserva dentro de la misma transacción que persiste la orden.
func (l *Ledger) CommitInTx(resRepo repository.ReservationRepository, token string) error {
	return commitWith(resRepo, token)
}

func commitWith(resRepo repository.ReservationRepository, token string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	ok, err := resRepo.UpdateStatusIf(token, entity.ReservationStatusHeld, entity.ReservationStatusCommitted)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidToken
	}
	return nil
}

// Release revierte una reserva en held: devuelve la cantidad al stock y marca
// la reserva como released, en una transacción. Idempotente: liberar una
// reserva ya liberada es un no-op, para tolerar reintentos duplicados.
// Liberar una reserva ya comprometida falla con ErrInvalidToken.
func (l *Ledger) Release(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	return l.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		resRepo repository.ReservationRepository,
	) error {
		res, err := resRepo.GetByToken(token)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrInvalidToken
		}
		switch res.Status {
		case entity.ReservationStatusReleased:
			return nil // ya liberada: no-op
		case entity.ReservationStatusCommitted:
			return domain.ErrInvalidToken
		}
		ok, err := resRepo.UpdateStatusIf(token, entity.ReservationStatusHeld, entity.ReservationStatusReleased)
		if err != nil {
			return err
		}
		if !ok {
			// Otro release ganó el CAS entre la lectura y este punto.
			current, gerr := resRepo.GetByToken(token)
			if gerr != nil {
				return gerr
			}
			if current != nil && current.Status == entity.ReservationStatusReleased {
				return nil
			}
			return domain.ErrInvalidToken
		}
		return invRepo.Increment(res.ProductID, res.Quantity)
	})
}

// Adjust aplica un ajuste administrativo (delta positivo o negativo) en un
// único paso atómico contra el valor actual, nunca contra una lectura vieja.
// Falla con ErrInvalidAdjustment si dejaría la cantidad por debajo de cero.
func (l *Ledger) Adjust(ctx context.Context, productID string, delta int64) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	record, err := l.invRepo.GetByProduct(productID)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrNotFound
	}
	if delta == 0 {
		return nil
	}
	ok, err := l.invRepo.AdjustIfNonNegative(productID, delta)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidAdjustment
	}
	return nil
}

// GetReservation retorna una reserva por token (proyección de solo lectura).
func (l *Ledger) GetReservation(ctx context.Context, token string) (*entity.Reservation, error) {
	res, err := l.resRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	return res, nil
}
