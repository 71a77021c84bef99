package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-api/internal/application/dto"
	"github.com/tu-usuario/tienda-api/internal/application/inventory"
)

// InventoryHandler maneja el libro de inventario: registros, reservas y ajustes.
type InventoryHandler struct {
	uc     *inventory.UseCase
	ledger *inventory.Ledger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, ledger *inventory.Ledger) *InventoryHandler {
	return &InventoryHandler{uc: uc, ledger: ledger}
}

// Create godoc
// @Summary      Crear registro de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "Producto, cantidad inicial y bodega"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "Producto no existe"
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateRecord(c.Context(), in.ProductID, in.Quantity, in.WarehouseLocation)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInventoryResponse(out))
}

// GetByID godoc
// @Summary      Obtener registro de inventario por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	return c.JSON(toInventoryResponse(out))
}

// GetByProduct godoc
// @Summary      Obtener el stock de un producto
// @Tags         inventory
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/product/{productId} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetByProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el producto no tiene inventario"})
	}
	return c.JSON(toInventoryResponse(out))
}

// List godoc
// @Summary      Listar registros de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	items, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.InventoryListResponse{
		Items: make([]dto.InventoryResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, rec := range items {
		out.Items = append(out.Items, toInventoryResponse(rec))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ubicación de bodega
// @Description  La cantidad no se edita aquí: usar el ajuste atómico.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.UpdateInventoryRequest  true  "Nueva ubicación"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.WarehouseLocation == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_location es requerido"})
	}
	out, err := h.uc.UpdateLocation(c.Context(), c.Params("id"), *in.WarehouseLocation)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInventoryResponse(out))
}

// Delete godoc
// @Summary      Eliminar registro de inventario
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Ajuste administrativo de stock
// @Description  Suma o resta atómicamente; falla si el resultado sería negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "Delta (+/-)"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "Dejaría el stock negativo"
// @Router       /api/inventory/product/{productId}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	productID := c.Params("productId")
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.Adjust(c.Context(), productID, in.Adjustment); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByProduct(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInventoryResponse(out))
}

// Reserve godoc
// @Summary      Reservar stock
// @Description  Descuenta atómicamente y devuelve un token de reserva.
// @Description  Con idempotency_key, reintentar devuelve la misma reserva.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "Producto, cantidad y clave de idempotencia"
// @Success      201   {object}  dto.ReservationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/inventory/reservations [post]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.Reserve(c.Context(), in.ProductID, in.Quantity, in.IdempotencyKey)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReservationResponse(out))
}

// GetReservation godoc
// @Summary      Consultar una reserva
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        token  path  string  true  "Token de la reserva"
// @Success      200  {object}  dto.ReservationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations/{token} [get]
func (h *InventoryHandler) GetReservation(c *fiber.Ctx) error {
	out, err := h.ledger.GetReservation(c.Context(), c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reserva no encontrada"})
	}
	return c.JSON(toReservationResponse(out))
}

// Commit godoc
// @Summary      Comprometer una reserva
// @Description  Consume definitivamente el stock reservado. Solo reservas en held.
// @Tags         inventory
// @Security     Bearer
// @Param        token  path  string  true  "Token de la reserva"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Token desconocido o ya resuelto"
// @Router       /api/inventory/reservations/{token}/commit [post]
func (h *InventoryHandler) Commit(c *fiber.Ctx) error {
	if err := h.ledger.Commit(c.Context(), c.Params("token")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Release godoc
// @Summary      Liberar una reserva
// @Description  Devuelve el stock reservado. Liberar dos veces es un no-op;
// @Description  liberar una reserva ya comprometida falla.
// @Tags         inventory
// @Security     Bearer
// @Param        token  path  string  true  "Token de la reserva"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations/{token}/release [post]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	if err := h.ledger.Release(c.Context(), c.Params("token")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
