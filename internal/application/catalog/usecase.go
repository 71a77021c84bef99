package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-api/internal/application/dto"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
	"github.com/tu-usuario/tienda-api/pkg/logger"
)

// UseCase administra el catálogo (productos y categorías) y expone la vista
// de solo lectura que consume el motor de órdenes: precio y stock por
// producto. Toda mutación de stock va por el libro de inventario, no por aquí.
type UseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	invRepo      repository.InventoryRepository
	cache        ProductCache
	log          *logger.Logger
}

// NewUseCase construye el caso de uso de catálogo. cache puede ser nil
// (se omite el read-through y todo va a la BD).
func NewUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	invRepo repository.InventoryRepository,
	cache ProductCache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		invRepo:      invRepo,
		cache:        cache,
		log:          log,
	}
}

// GetProduct resuelve un producto por ID con read-through al cache.
// Retorna (nil, nil) si no existe; implementa order.Catalog.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			// El cache caído no tumba el catálogo: seguir a la BD.
			uc.log.Warn().Err(err).Str("product_id", id).Msg("leer cache de productos")
		} else if cached != nil {
			return cached, nil
		}
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return product, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, product); err != nil {
			uc.log.Warn().Err(err).Str("product_id", id).Msg("poblar cache de productos")
		}
	}
	return product, nil
}

// GetPrice retorna el precio actual de un producto.
func (uc *UseCase) GetPrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	product, err := uc.GetProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return product.Price, nil
}

// GetStock retorna la cantidad disponible de un producto según el libro de
// inventario. Solo lectura; sin efectos.
func (uc *UseCase) GetStock(ctx context.Context, productID string) (int64, error) {
	record, err := uc.invRepo.GetByProduct(productID)
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, domain.ErrNotFound
	}
	return record.Quantity, nil
}

// CreateProduct crea un producto. Si viene initial_stock también crea el
// registro de inventario con esa cantidad.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock != nil && *in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	if in.InitialStock != nil {
		record := &entity.InventoryRecord{
			ID:                uuid.New().String(),
			ProductID:         product.ID,
			Quantity:          *in.InitialStock,
			WarehouseLocation: in.WarehouseLocation,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := uc.invRepo.Create(record); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// GetProductByID obtiene un producto; ErrNotFound si no existe.
func (uc *UseCase) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista productos con paginación.
func (uc *UseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// SearchProducts busca productos por subcadena del nombre (case-insensitive).
func (uc *UseCase) SearchProducts(ctx context.Context, name string, limit, offset int) ([]*entity.Product, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.productRepo.SearchByName(name, limit, offset)
}

// UpdateProduct actualiza campos del producto e invalida el cache.
func (uc *UseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		cat, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	return product, nil
}

// DeleteProduct elimina un producto. Si está referenciado por líneas de orden
// existentes el constraint de FK lo impide y se reporta ErrConflict.
func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.productRepo.Delete(id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *UseCase) invalidate(ctx context.Context, productID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, productID); err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Msg("invalidar cache de productos")
	}
}

// CreateCategories crea un lote de categorías en un solo statement atómico.
// Cada categoría debe traer nombre.
func (uc *UseCase) CreateCategories(ctx context.Context, in []dto.CreateCategoryRequest) ([]*entity.Category, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	categories := make([]*entity.Category, 0, len(in))
	for _, c := range in {
		if c.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		categories = append(categories, &entity.Category{
			ID:          uuid.New().String(),
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := uc.categoryRepo.CreateBatch(categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID obtiene una categoría.
func (uc *UseCase) GetCategoryByID(ctx context.Context, id string) (*entity.Category, error) {
	cat, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	return cat, nil
}

// ListCategories lista categorías con paginación.
func (uc *UseCase) ListCategories(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	return uc.categoryRepo.List(limit, offset)
}

// UpdateCategory actualiza una categoría.
func (uc *UseCase) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*entity.Category, error) {
	cat, err := uc.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		cat.Name = *in.Name
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	cat.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory elimina una categoría.
func (uc *UseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.GetCategoryByID(ctx, id); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(id)
}
