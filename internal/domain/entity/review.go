package entity

import "time"

// Review es una reseña de producto dejada por un cliente.
type Review struct {
	ID         string
	ProductID  string
	CustomerID string
	Rating     int // 1..5
	Comment    string
	ReviewDate time.Time
	CreatedAt  time.Time
}
