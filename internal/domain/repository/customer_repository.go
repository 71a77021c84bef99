package repository

import "github.com/tu-usuario/tienda-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para cuentas de cliente.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
}
