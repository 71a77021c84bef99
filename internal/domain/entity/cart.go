package entity

import "time"

// Cart es el carrito de un cliente (uno por cliente, customer_id único).
type Cart struct {
	ID         string
	CustomerID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartLine es una línea (producto, cantidad) dentro de un carrito.
// Agregar un producto ya presente incrementa Quantity en vez de duplicar la línea.
// La disponibilidad NO se valida aquí: la reserva ocurre al crear la orden.
type CartLine struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int64 // > 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
