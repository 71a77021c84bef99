package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

// UseCase expone proyecciones de solo lectura del registro de ventas.
// Las ventas se insertan únicamente desde el workflow de órdenes; este caso
// de uso nunca muta nada.
type UseCase struct {
	saleRepo repository.SaleRepository
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{saleRepo: saleRepo}
}

// List lista ventas, más recientes primero.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(limit, offset)
}

// GetByID obtiene una venta.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ListByProduct lista ventas de un producto, opcionalmente acotadas por rango
// de fechas.
func (uc *UseCase) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.saleRepo.ListByProduct(productID, from, to, limit, offset)
}

// SearchByProductName busca ventas por subcadena del nombre del producto.
func (uc *UseCase) SearchByProductName(ctx context.Context, name string, limit, offset int) ([]*entity.Sale, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.saleRepo.SearchByProductName(name, limit, offset)
}
