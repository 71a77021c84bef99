package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es un hecho derivado, solo-inserción: una línea vendida de una orden.
// Nunca se actualiza; solo se elimina en cascada si se borra una orden pendiente.
type Sale struct {
	ID          string
	ProductID   string
	OrderID     string
	Quantity    int64
	TotalAmount decimal.Decimal
	SaleDate    time.Time
	CreatedAt   time.Time
}
