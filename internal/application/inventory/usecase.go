package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

// UseCase administra los registros de inventario (CRUD). Las cantidades solo
// se mutan vía Ledger; aquí apenas se crea el registro inicial y se edita la
// ubicación de bodega.
type UseCase struct {
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(invRepo repository.InventoryRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{invRepo: invRepo, productRepo: productRepo}
}

// CreateRecord crea el registro de inventario de un producto.
// La cantidad inicial no puede ser negativa y el producto debe existir.
func (uc *UseCase) CreateRecord(ctx context.Context, productID string, quantity int64, warehouseLocation string) (*entity.InventoryRecord, error) {
	if productID == "" || quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	record := &entity.InventoryRecord{
		ID:                uuid.New().String(),
		ProductID:         productID,
		Quantity:          quantity,
		WarehouseLocation: warehouseLocation,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.invRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetByID obtiene un registro de inventario por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	record, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// GetByProduct obtiene el registro de inventario de un producto.
func (uc *UseCase) GetByProduct(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	record, err := uc.invRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// List lista registros de inventario con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.InventoryRecord, error) {
	return uc.invRepo.List(limit, offset)
}

// UpdateLocation actualiza la ubicación de bodega de un registro.
func (uc *UseCase) UpdateLocation(ctx context.Context, id, warehouseLocation string) (*entity.InventoryRecord, error) {
	record, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.invRepo.UpdateLocation(id, warehouseLocation); err != nil {
		return nil, err
	}
	record.WarehouseLocation = warehouseLocation
	record.UpdatedAt = time.Now()
	return record, nil
}

// Delete elimina un registro de inventario.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	record, err := uc.invRepo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrNotFound
	}
	return uc.invRepo.Delete(id)
}
