package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/order"
)

func TestCanTransition_TablaCompleta(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want error
	}{
		{"pending a paid", entity.OrderStatusPending, entity.OrderStatusPaid, nil},
		{"pending a cancelled", entity.OrderStatusPending, entity.OrderStatusCancelled, nil},
		{"paid a fulfilled", entity.OrderStatusPaid, entity.OrderStatusFulfilled, nil},
		{"paid a cancelled", entity.OrderStatusPaid, entity.OrderStatusCancelled, nil},

		// pending no puede saltarse paid
		{"pending a fulfilled", entity.OrderStatusPending, entity.OrderStatusFulfilled, domain.ErrInvalidTransition},

		// estados terminales
		{"cancelled a pending", entity.OrderStatusCancelled, entity.OrderStatusPending, domain.ErrInvalidTransition},
		{"cancelled a paid", entity.OrderStatusCancelled, entity.OrderStatusPaid, domain.ErrInvalidTransition},
		{"fulfilled a cancelled", entity.OrderStatusFulfilled, entity.OrderStatusCancelled, domain.ErrInvalidTransition},
		{"fulfilled a paid", entity.OrderStatusFulfilled, entity.OrderStatusPaid, domain.ErrInvalidTransition},

		// no hay transiciones reflexivas
		{"paid a paid", entity.OrderStatusPaid, entity.OrderStatusPaid, domain.ErrInvalidTransition},

		// estados desconocidos
		{"origen desconocido", "shipped", entity.OrderStatusPaid, domain.ErrInvalidInput},
		{"destino desconocido", entity.OrderStatusPending, "shipped", domain.ErrInvalidInput},
		{"ambos desconocidos", "a", "b", domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := order.CanTransition(tc.from, tc.to)
			if tc.want == nil {
				assert.NoError(t, got)
			} else {
				assert.ErrorIs(t, got, tc.want)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		entity.OrderStatusPending, entity.OrderStatusPaid,
		entity.OrderStatusCancelled, entity.OrderStatusFulfilled,
	} {
		assert.True(t, order.ValidStatus(s), s)
	}
	assert.False(t, order.ValidStatus("shipped"))
	assert.False(t, order.ValidStatus(""))
}

// Solo cancelar una orden aún pendiente devuelve stock: una vez pagada,
// la cancelación ya no repone automáticamente (puede haber despacho en curso).
func TestRestoresStock(t *testing.T) {
	assert.True(t, order.RestoresStock(entity.OrderStatusPending, entity.OrderStatusCancelled))
	assert.False(t, order.RestoresStock(entity.OrderStatusPaid, entity.OrderStatusCancelled))
	assert.False(t, order.RestoresStock(entity.OrderStatusPending, entity.OrderStatusPaid))
	assert.False(t, order.RestoresStock(entity.OrderStatusPaid, entity.OrderStatusFulfilled))
}
