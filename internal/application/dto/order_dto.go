package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest una línea (producto, cantidad) de la orden a crear.
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrderRequest body para crear una orden.
// ClearCart decide si el carrito del cliente se vacía al crear la orden
// (política del caller, no se asume).
type CreateOrderRequest struct {
	Lines          []OrderLineRequest `json:"lines"`
	ClearCart      bool               `json:"clear_cart"`
	IdempotencyKey string             `json:"idempotency_key,omitempty"`
}

// UpdateOrderStatusRequest body para cambiar el estado de una orden.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderLineResponse línea de orden con el precio congelado al crearla.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Status     string              `json:"status"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	Lines      []OrderLineResponse `json:"lines"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
