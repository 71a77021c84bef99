package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// El stock NO vive aquí: lo administra el libro de inventario (InventoryRecord)
// y solo se muta a través de reservas, liberaciones y ajustes.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario, >= 0
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
