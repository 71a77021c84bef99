package repository

import "github.com/tu-usuario/tienda-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error)
	List(limit, offset int) ([]*entity.Order, error)

	// UpdateStatusIf cambia el estado solo si el actual coincide con from
	// (compare-and-swap), para que dos transiciones concurrentes no se pisen.
	UpdateStatusIf(id, from, to string) (bool, error)

	// Delete elimina la orden y sus líneas.
	Delete(id string) error
}
