package catalog

import (
	"context"

	"github.com/tu-usuario/tienda-api/internal/domain/entity"
)

// ProductCache cache de lectura de productos (Redis). Get retorna (nil, nil)
// en cache miss; el caso de uso cae a la BD y repuebla. Toda escritura de
// catálogo invalida la entrada para no servir precios viejos.
type ProductCache interface {
	Get(ctx context.Context, productID string) (*entity.Product, error)
	Set(ctx context.Context, product *entity.Product) error
	Invalidate(ctx context.Context, productID string) error
}
