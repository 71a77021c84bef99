package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest body para agregar un producto al carrito.
// Quantity por defecto 1 si viene en cero.
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CartLineResponse línea del carrito con el producto resuelto.
type CartLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito completo de un cliente.
type CartResponse struct {
	CartID     string             `json:"cart_id"`
	CustomerID string             `json:"customer_id"`
	Lines      []CartLineResponse `json:"lines"`
	Total      decimal.Decimal    `json:"total"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
