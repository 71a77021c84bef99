package inventory

import (
	"context"

	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el descuento de stock y el alta
// de la reserva sean un solo paso atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		resRepo repository.ReservationRepository,
	) error) error
}
