package dto

import "time"

// CreateInventoryRequest body para crear un registro de inventario.
type CreateInventoryRequest struct {
	ProductID         string `json:"product_id"`
	Quantity          int64  `json:"quantity"`
	WarehouseLocation string `json:"warehouse_location"`
}

// UpdateInventoryRequest body para actualizar la ubicación de bodega.
// La cantidad no se edita directamente: usar el ajuste atómico.
type UpdateInventoryRequest struct {
	WarehouseLocation *string `json:"warehouse_location"`
}

// AdjustStockRequest body para un ajuste administrativo de stock (+/-).
type AdjustStockRequest struct {
	Adjustment int64 `json:"adjustment"`
}

// ReserveStockRequest body para reservar stock.
// IdempotencyKey (opcional) hace seguro reintentar la petición.
type ReserveStockRequest struct {
	ProductID      string `json:"product_id"`
	Quantity       int64  `json:"quantity"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// ReservationResponse salida de una reserva.
type ReservationResponse struct {
	Token     string    `json:"token"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// InventoryResponse salida de un registro de inventario.
type InventoryResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	Quantity          int64     `json:"quantity"`
	WarehouseLocation string    `json:"warehouse_location"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// InventoryListResponse lista paginada de inventario.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
