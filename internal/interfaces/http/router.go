package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/reports"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	UserUC            *usecase.UserUseCase
	CategoryUC        *usecase.CategoryUseCase
	LocationUC        *usecase.LocationUseCase
	SupplierUC        *usecase.SupplierUseCase
	ProductUC         *usecase.ProductUseCase
	ProductLocationUC *usecase.ProductLocationUseCase
	ApplyMovement     *inventory.ApplyMovementUseCase
	MovementQuery     *inventory.MovementQueryUseCase
	ReportUC          *reports.ReportUseCase
	JWTSecret         string
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users: /me para cualquiera, el resto ADMIN
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Post("/", adminOnly, userHandler.Create)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Catálogo: lectura para todos, escritura ADMIN
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", adminOnly, locationHandler.Create)
	locations.Put("/:id", adminOnly, locationHandler.Update)
	locations.Delete("/:id", adminOnly, locationHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Contadores de stock
	pls := protected.Group("/product-locations")
	plHandler := NewProductLocationHandler(deps.ProductLocationUC)
	pls.Get("/", plHandler.List)
	pls.Get("/:id", plHandler.GetByID)
	pls.Post("/", adminOnly, plHandler.Create)
	pls.Put("/:id", adminOnly, plHandler.Update)
	pls.Delete("/:id", adminOnly, plHandler.Delete)

	// Movimientos
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.MovementQuery)
	movements.Post("/verify", adminOnly, movementHandler.Verify)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)

	// Reportes
	rep := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	rep.Get("/low-stock", reportHandler.LowStock)
	rep.Get("/low-stock/export", reportHandler.ExportLowStock)
	rep.Get("/inventory-value", reportHandler.InventoryValue)
	rep.Get("/inventory-value/pdf", reportHandler.InventoryValuePDF)
	rep.Get("/movements", reportHandler.Movements)
	rep.Get("/movements/export", reportHandler.ExportMovements)
}
