package repository

import (
	"time"

	"github.com/tu-usuario/tienda-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para el registro de ventas.
// Solo-inserción: no hay Update; DeleteByOrder existe únicamente para la
// cascada al borrar una orden pendiente.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
	SearchByProductName(name string, limit, offset int) ([]*entity.Sale, error)
	DeleteByOrder(orderID string) error
}
