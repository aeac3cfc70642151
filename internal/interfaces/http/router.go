package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger     *inventory.LedgerUseCase
	Undo       *inventory.UndoUseCase
	Queries    *inventory.StockQueryUseCase
	Deletion   *inventory.DeletionUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	CustomerUC *usecase.CustomerUseCase
	UserUC     *usecase.UserUseCase
	LogUC      *usecase.ActionLogUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios (protegido, solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)
	users.Get("/:id", authHandler.GetUser)

	// Movimientos de inventario y undo (protegido)
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Undo, deps.Queries)
	inv.Post("/imports", inventoryHandler.ImportStock)
	inv.Post("/imports/batch", inventoryHandler.ImportBatch)
	inv.Post("/exports", inventoryHandler.ExportStock)
	inv.Post("/exports/batch", inventoryHandler.ExportBatch)
	inv.Post("/undo", inventoryHandler.Undo)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/total-value", inventoryHandler.TotalValue)

	// Comprobantes (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.Ledger)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Put("/:id/details/:detailId", transactionHandler.UpdateDetail)
	transactions.Delete("/:id/details/:detailId", transactionHandler.RemoveDetail)

	// Diario de auditoría (protegido)
	logs := protected.Group("/action-logs")
	actionLogHandler := NewActionLogHandler(deps.LogUC)
	logs.Get("/", actionLogHandler.List)
	logs.Get("/count", actionLogHandler.Count)
	logs.Post("/purge", RequireRole(entity.RoleAdmin), actionLogHandler.Purge)
	logs.Get("/:id", actionLogHandler.GetByID)
	logs.Delete("/:id", RequireRole(entity.RoleAdmin), actionLogHandler.Delete)

	// Productos (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Deletion)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Deletion)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Proveedores (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Clientes (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
}
