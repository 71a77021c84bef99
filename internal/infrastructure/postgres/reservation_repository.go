package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación del puerto ReservationRepository sobre
// PostgreSQL (usable con pool o tx). Los cambios de estado son CAS por fila:
// UPDATE ... WHERE token = $1 AND status = $2.
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador de reservas. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `token, product_id, quantity, status, COALESCE(idempotency_key, ''), COALESCE(order_id, ''), created_at, updated_at`

// Create persiste una reserva. Si trae idempotency_key y ya existe una con esa
// clave, retorna ErrDuplicate (constraint único).
func (r *ReservationRepo) Create(reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (token, product_id, quantity, status, idempotency_key, order_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		reservation.Token, reservation.ProductID, reservation.Quantity, reservation.Status,
		reservation.IdempotencyKey, reservation.OrderID, reservation.CreatedAt, reservation.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// GetByToken obtiene una reserva por token. Retorna (nil, nil) si no existe.
func (r *ReservationRepo) GetByToken(token string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE token = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, token), "get reservation")
}

// GetByIdempotencyKey obtiene una reserva por clave de idempotencia.
func (r *ReservationRepo) GetByIdempotencyKey(key string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE idempotency_key = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, key), "get reservation by key")
}

func (r *ReservationRepo) scanOne(row pgx.Row, op string) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(&res.Token, &res.ProductID, &res.Quantity, &res.Status,
		&res.IdempotencyKey, &res.OrderID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}

// ListByOrder lista las reservas asociadas a una orden.
func (r *ReservationRepo) ListByOrder(orderID string) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list reservations by order: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		if err := rows.Scan(&res.Token, &res.ProductID, &res.Quantity, &res.Status,
			&res.IdempotencyKey, &res.OrderID, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// UpdateStatusIf cambia el estado solo si el actual coincide con from (CAS).
func (r *ReservationRepo) UpdateStatusIf(token, from, to string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE reservations SET status = $3, updated_at = now() WHERE token = $1 AND status = $2`,
		token, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("cas reservation status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// AttachOrder asocia la reserva a una orden.
func (r *ReservationRepo) AttachOrder(token, orderID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE reservations SET order_id = $2, updated_at = now() WHERE token = $1`,
		token, orderID,
	)
	if err != nil {
		return fmt.Errorf("attach reservation to order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidToken
	}
	return nil
}

// DeleteByOrder elimina las reservas de una orden (cascada al borrar la orden).
func (r *ReservationRepo) DeleteByOrder(orderID string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM reservations WHERE order_id = $1`, orderID,
	); err != nil {
		return fmt.Errorf("delete reservations by order: %w", err)
	}
	return nil
}
