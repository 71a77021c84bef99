package repository

import "github.com/tu-usuario/tienda-api/internal/domain/entity"

// InventoryRepository define el puerto para el stock autoritativo por producto.
// Las mutaciones de cantidad son UPDATEs condicionales: un solo paso atómico
// contra el valor persistido actual, nunca leer-calcular-escribir en dos llamadas.
type InventoryRepository interface {
	Create(record *entity.InventoryRecord) error
	GetByID(id string) (*entity.InventoryRecord, error)
	GetByProduct(productID string) (*entity.InventoryRecord, error)
	List(limit, offset int) ([]*entity.InventoryRecord, error)
	UpdateLocation(id, warehouseLocation string) error
	Delete(id string) error

	// DecrementIfAvailable descuenta qty solo si quantity >= qty
	// (UPDATE ... SET quantity = quantity - $2 WHERE product_id = $1 AND quantity >= $2).
	// Retorna false si no alcanzó el stock o el producto no tiene registro.
	DecrementIfAvailable(productID string, qty int64) (bool, error)

	// Increment suma qty al stock (devolución de una reserva o reposición).
	Increment(productID string, qty int64) error

	// AdjustIfNonNegative aplica delta (positivo o negativo) solo si el
	// resultado queda >= 0, en un único paso atómico. Retorna false si el
	// ajuste dejaría la cantidad negativa.
	AdjustIfNonNegative(productID string, delta int64) (bool, error)
}
