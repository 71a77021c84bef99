package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-api/internal/application/dto"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

// Catalog es la vista de catálogo que el carrito usa para validar productos
// y resolver sus datos al mostrar el carrito. GetProduct retorna (nil, nil)
// si el producto no existe.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
}

// UseCase es el agregado carrito: una colección mutable de líneas
// (producto, cantidad) por cliente. Aquí no se valida disponibilidad: el
// carrito puede contener más de lo que hay en stock; la reserva ocurre al
// crear la orden, no al agregar.
type UseCase struct {
	cartRepo repository.CartRepository
	catalog  Catalog
}

// NewUseCase construye el caso de uso de carrito.
func NewUseCase(cartRepo repository.CartRepository, catalog Catalog) *UseCase {
	return &UseCase{cartRepo: cartRepo, catalog: catalog}
}

// AddItem agrega un producto al carrito del cliente (lo crea si no existe).
// Si el producto ya es una línea, incrementa la cantidad en vez de duplicarla.
// Falla con ErrNotFound si el producto no resuelve en el catálogo.
func (uc *UseCase) AddItem(ctx context.Context, customerID string, in dto.AddCartItemRequest) (*entity.CartLine, error) {
	if customerID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.catalog.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	cart, err := uc.cartRepo.GetOrCreateByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	// El upsert suma la cantidad sobre la fila persistida: no hay
	// leer-modificar-escribir que dos agregados concurrentes puedan pisar.
	now := time.Now()
	if err := uc.cartRepo.UpsertLine(&entity.CartLine{
		ID:        uuid.New().String(),
		CartID:    cart.ID,
		ProductID: in.ProductID,
		Quantity:  qty,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetLine(cart.ID, in.ProductID)
}

// RemoveLine elimina una línea del carrito. ErrNotFound si no existe.
func (uc *UseCase) RemoveLine(ctx context.Context, lineID string) error {
	if lineID == "" {
		return domain.ErrInvalidInput
	}
	line, err := uc.cartRepo.GetLineByID(lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return domain.ErrNotFound
	}
	return uc.cartRepo.DeleteLine(lineID)
}

// Clear elimina todas las líneas del carrito del cliente.
// No-op si el cliente no tiene carrito.
func (uc *UseCase) Clear(ctx context.Context, customerID string) error {
	if customerID == "" {
		return domain.ErrInvalidInput
	}
	cart, err := uc.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return uc.cartRepo.DeleteLines(cart.ID)
}

// View retorna el carrito del cliente con el producto resuelto por línea y el
// total a precios actuales (informativo: el precio real se captura al ordenar).
// ErrNotFound si el cliente no tiene carrito.
func (uc *UseCase) View(ctx context.Context, customerID string) (*dto.CartResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.cartRepo.ListLines(cart.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartResponse{
		CartID:     cart.ID,
		CustomerID: cart.CustomerID,
		Lines:      make([]dto.CartLineResponse, 0, len(lines)),
		Total:      decimal.Zero,
		UpdatedAt:  cart.UpdatedAt,
	}
	for _, line := range lines {
		product, err := uc.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		lr := dto.CartLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if product != nil {
			lr.ProductName = product.Name
			lr.SKU = product.SKU
			lr.UnitPrice = product.Price
			lr.Subtotal = product.Price.Mul(decimal.NewFromInt(line.Quantity))
			resp.Total = resp.Total.Add(lr.Subtotal)
		}
		resp.Lines = append(resp.Lines, lr)
	}
	return resp, nil
}
