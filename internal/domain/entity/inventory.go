package entity

import "time"

// InventoryRecord es el stock autoritativo de un producto (product_id único).
// Invariante: Quantity >= 0 en todo momento, incluso bajo ajustes concurrentes;
// toda mutación es un UPDATE condicional contra el valor persistido actual.
type InventoryRecord struct {
	ID                string
	ProductID         string
	Quantity          int64
	WarehouseLocation string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Estados de una reserva de stock.
const (
	ReservationStatusHeld      = "held"      // stock descontado, pendiente de commit
	ReservationStatusCommitted = "committed" // consumida por una orden
	ReservationStatusReleased  = "released"  // revertida, stock devuelto
)

// Reservation es el registro de una reserva de stock. Token es el handle opaco
// que el caller necesita para hacer commit o release de esa reserva exacta.
// IdempotencyKey (opcional, único) hace seguro reintentar un Reserve.
type Reservation struct {
	Token          string
	ProductID      string
	Quantity       int64
	Status         string
	IdempotencyKey string
	OrderID        string // se asigna al comprometer la reserva en una orden
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
