package order

import (
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
)

// transitions define la tabla de transiciones válidas del ciclo de vida de una orden:
//
//	pending   -> paid | cancelled
//	paid      -> fulfilled | cancelled
//	cancelled -> (terminal)
//	fulfilled -> (terminal)
//
// pending -> fulfilled NO es válido: debe pasar por paid.
var transitions = map[string][]string{
	entity.OrderStatusPending:   {entity.OrderStatusPaid, entity.OrderStatusCancelled},
	entity.OrderStatusPaid:      {entity.OrderStatusFulfilled, entity.OrderStatusCancelled},
	entity.OrderStatusCancelled: {},
	entity.OrderStatusFulfilled: {},
}

// ValidStatus indica si s es un estado de orden conocido.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition valida la transición from -> to contra la tabla.
// Retorna ErrInvalidInput si alguno de los estados no existe y
// ErrInvalidTransition si la transición no está permitida.
func CanTransition(from, to string) error {
	nexts, ok := transitions[from]
	if !ok || !ValidStatus(to) {
		return domain.ErrInvalidInput
	}
	for _, n := range nexts {
		if n == to {
			return nil
		}
	}
	return domain.ErrInvalidTransition
}

// RestoresStock indica si la transición from -> cancelled debe devolver el
// stock reservado por la orden (solo cuando aún no se ha despachado nada).
func RestoresStock(from, to string) bool {
	return to == entity.OrderStatusCancelled && from == entity.OrderStatusPending
}
