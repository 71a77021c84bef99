package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-api/internal/application/auth"
	"github.com/tu-usuario/tienda-api/internal/application/cart"
	"github.com/tu-usuario/tienda-api/internal/application/catalog"
	"github.com/tu-usuario/tienda-api/internal/application/inventory"
	"github.com/tu-usuario/tienda-api/internal/application/order"
	"github.com/tu-usuario/tienda-api/internal/application/review"
	"github.com/tu-usuario/tienda-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *catalog.UseCase
	CartUC      *cart.UseCase
	OrderWF     *order.Workflow
	InventoryUC *inventory.UseCase
	Ledger      *inventory.Ledger
	SalesUC     *sales.UseCase
	ReviewUC    *review.UseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo: lectura pública, escritura protegida
	productHandler := NewProductHandler(deps.CatalogUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	categoryHandler := NewCategoryHandler(deps.CatalogUC)
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)

	reviewHandler := NewReviewHandler(deps.ReviewUC)
	reviews := api.Group("/reviews")
	reviews.Get("/product/:productId", reviewHandler.ListByProduct)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Ledger)
	api.Get("/inventory/product/:productId", inventoryHandler.GetByProduct)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/products", productHandler.Create)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)

	protected.Post("/categories", categoryHandler.CreateBatch)
	protected.Put("/categories/:id", categoryHandler.Update)
	protected.Delete("/categories/:id", categoryHandler.Delete)

	// Carrito (protegido, del cliente autenticado)
	cartHandler := NewCartHandler(deps.CartUC)
	protected.Get("/cart", cartHandler.View)
	protected.Delete("/cart", cartHandler.Clear)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Delete("/cart/items/:lineId", cartHandler.RemoveLine)

	// Órdenes (protegido)
	orderHandler := NewOrderHandler(deps.OrderWF)
	protected.Post("/orders", orderHandler.Create)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.GetByID)
	protected.Patch("/orders/:id/status", orderHandler.UpdateStatus)
	protected.Delete("/orders/:id", orderHandler.Delete)

	// Inventario y reservas (protegido)
	protected.Post("/inventory", inventoryHandler.Create)
	protected.Get("/inventory", inventoryHandler.List)
	protected.Get("/inventory/:id", inventoryHandler.GetByID)
	protected.Put("/inventory/:id", inventoryHandler.Update)
	protected.Delete("/inventory/:id", inventoryHandler.Delete)
	protected.Post("/inventory/product/:productId/adjust", inventoryHandler.Adjust)
	protected.Post("/inventory/reservations", inventoryHandler.Reserve)
	protected.Get("/inventory/reservations/:token", inventoryHandler.GetReservation)
	protected.Post("/inventory/reservations/:token/commit", inventoryHandler.Commit)
	protected.Post("/inventory/reservations/:token/release", inventoryHandler.Release)

	// Ventas (protegido, solo lectura)
	saleHandler := NewSaleHandler(deps.SalesUC)
	protected.Get("/sales", saleHandler.List)
	protected.Get("/sales/:id", saleHandler.GetByID)
	protected.Get("/sales/product/:productId", saleHandler.ListByProduct)

	// Reseñas (escritura protegida)
	protected.Post("/reviews", reviewHandler.Create)
	protected.Delete("/reviews/:id", reviewHandler.Delete)
}
