package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/tienda-api/internal/application/dto"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

// UseCase administra reseñas de productos: crear, listar por producto, borrar.
type UseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso de reseñas.
func NewUseCase(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Create crea una reseña. Rating debe estar entre 1 y 5 y el producto existir.
func (uc *UseCase) Create(ctx context.Context, customerID string, in dto.CreateReviewRequest) (*entity.Review, error) {
	if customerID == "" || in.ProductID == "" || in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	rev := &entity.Review{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		CustomerID: customerID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		ReviewDate: now,
		CreatedAt:  now,
	}
	if err := uc.reviewRepo.Create(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// ListByProduct lista las reseñas de un producto, más recientes primero.
func (uc *UseCase) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Review, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.reviewRepo.ListByProduct(productID, limit, offset)
}

// Delete elimina una reseña.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	rev, err := uc.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rev == nil {
		return domain.ErrNotFound
	}
	return uc.reviewRepo.Delete(id)
}
