package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC   *usecase.LocationUseCase
	CatalogUC    *usecase.CatalogUseCase
	SupplierUC   *usecase.SupplierUseCase
	Transactions *inventory.StockTransactionUseCase
	Views        *inventory.ViewsUseCase
	Movements    *inventory.MovementQueryUseCase
	BOMUC        *manufacturing.BOMUseCase
	OrderUC      *manufacturing.OrderUseCase
	PurgeUC      *manufacturing.PurgeUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ubicaciones de stock
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.Get)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Catálogo, transacciones, vistas y movimientos
	inv := protected.Group("/inventory")
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.Views)
	inventoryHandler := NewInventoryHandler(deps.Transactions, deps.Views, deps.Movements)
	inv.Get("/items/export", catalogHandler.Export)
	inv.Post("/items", catalogHandler.Create)
	inv.Get("/items", catalogHandler.List)
	inv.Get("/items/:id", catalogHandler.Get)
	inv.Put("/items/:id", catalogHandler.Update)
	inv.Delete("/items/:id", catalogHandler.Delete)
	inv.Post("/transactions", inventoryHandler.RegisterTransaction)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/aggregate", inventoryHandler.Aggregate)
	inv.Get("/locations/:id", inventoryHandler.PerLocation)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/movements/:id", inventoryHandler.GetMovement)
	inv.Delete("/movements/:id", inventoryHandler.DeleteMovement)

	// Listas de materiales
	boms := protected.Group("/boms")
	bomHandler := NewBOMHandler(deps.BOMUC)
	boms.Post("/", bomHandler.Create)
	boms.Get("/", bomHandler.List)
	boms.Get("/:id", bomHandler.Get)
	boms.Put("/:id", bomHandler.Update)
	boms.Delete("/:id", bomHandler.Delete)

	// Órdenes de producción
	orders := protected.Group("/production-orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.Transition)
	orders.Post("/:id/consume", orderHandler.Consume)
	orders.Get("/:id/work-order.pdf", orderHandler.WorkOrderPDF)
	orders.Delete("/:id", orderHandler.Delete)

	// Proveedores
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.Get)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Purga total (solo admin)
	purgeHandler := NewPurgeHandler(deps.PurgeUC)
	protected.Post("/manufacturing/purge", RequireRole("admin"), purgeHandler.Purge)
}
