package entity

import "time"

// Customer representa una cuenta de cliente.
// PasswordHash es bcrypt; nunca se expone en respuestas.
type Customer struct {
	ID           string
	Name         string
	Email        string // único
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
