package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. Las transiciones válidas las define order.StateMachine.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
	OrderStatusFulfilled = "fulfilled"
)

// Order representa una orden de compra persistida.
// Invariante: TotalPrice == Σ(línea.Price * línea.Quantity), calculado en el
// servidor; nunca se acepta del caller.
type Order struct {
	ID         string
	CustomerID string
	Status     string
	TotalPrice decimal.Decimal
	Lines      []*OrderLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderLine es una línea de orden con el precio capturado al momento de crearla.
// Price es inmutable: una foto histórica, independiente de cambios posteriores
// en el precio del producto.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64           // > 0
	Price     decimal.Decimal // precio unitario al momento de la orden
	CreatedAt time.Time
}
