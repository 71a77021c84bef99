package repository

import "github.com/tu-usuario/tienda-api/internal/domain/entity"

// ReservationRepository define el puerto de persistencia para reservas de stock.
type ReservationRepository interface {
	Create(reservation *entity.Reservation) error
	GetByToken(token string) (*entity.Reservation, error)
	GetByIdempotencyKey(key string) (*entity.Reservation, error)
	ListByOrder(orderID string) ([]*entity.Reservation, error)

	// UpdateStatusIf cambia el estado solo si el actual coincide con from
	// (compare-and-swap sobre la fila). Retorna false si el CAS no aplicó.
	UpdateStatusIf(token, from, to string) (bool, error)

	// AttachOrder asocia la reserva comprometida a una orden.
	AttachOrder(token, orderID string) error

	// DeleteByOrder elimina las reservas asociadas a una orden; necesario
	// antes de borrar la orden porque la FK order_id no tiene ON DELETE.
	DeleteByOrder(orderID string) error
}
