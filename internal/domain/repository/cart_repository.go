package repository

import "github.com/tu-usuario/tienda-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para carritos y sus líneas.
// GetOrCreateByCustomer aprovecha el constraint único sobre customer_id:
// si el carrito ya existe lo retorna, si no lo crea (upsert).
type CartRepository interface {
	GetOrCreateByCustomer(customerID string) (*entity.Cart, error)
	GetByCustomer(customerID string) (*entity.Cart, error)
	GetLine(cartID, productID string) (*entity.CartLine, error)
	GetLineByID(lineID string) (*entity.CartLine, error)
	// UpsertLine inserta la línea o suma su cantidad a la existente para
	// (cart_id, product_id), atómicamente contra el valor persistido.
	UpsertLine(line *entity.CartLine) error
	ListLines(cartID string) ([]*entity.CartLine, error)
	DeleteLine(lineID string) error
	DeleteLines(cartID string) error
}
