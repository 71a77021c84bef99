package repository

import "github.com/tu-usuario/tienda-api/internal/domain/entity"

// ReviewRepository define el puerto de persistencia para reseñas.
type ReviewRepository interface {
	Create(review *entity.Review) error
	GetByID(id string) (*entity.Review, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Review, error)
	Delete(id string) error
}
