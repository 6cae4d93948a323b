package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *catalog.CategoryUseCase
	ItemUC     *catalog.ItemUseCase
	MovementUC *inventory.MovementUseCase
	ReportUC   *report.LowStockReportUseCase
	TokenRepo  repository.TokenRepository
	JWTSecret  string
	// RateLimiter es opcional; nil deshabilita el límite en las rutas públicas.
	RateLimiter *RateLimiter
}

// Router registra las rutas de la API bajo /v1.
func Router(app *fiber.App, deps RouterDeps) {
	v1 := app.Group("/v1")

	// Auth (público, con rate limit si hay Redis)
	authHandler := NewAuthHandler(deps.AuthUC)
	public := v1.Group("/")
	if deps.RateLimiter != nil {
		public = v1.Group("/", deps.RateLimiter.Middleware())
	}
	public.Post("/register", authHandler.Register)
	public.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token vigente)
	protected := v1.Group("/", AuthMiddleware(deps.JWTSecret, deps.TokenRepo))

	protected.Post("/logout", authHandler.Logout)

	// Categorías; las rutas fijas van antes de /:id
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/with-items", categoryHandler.ListWithItems)
	categories.Get("/with-count", categoryHandler.ListWithCount)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Patch("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Items; low-stock antes de /:id
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.ReportUC)
	items.Get("/low-stock/report", itemHandler.LowStockReport)
	items.Get("/low-stock", itemHandler.LowStock)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Patch("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Patch("/:id/stock", itemHandler.AdjustStock)

	// Entradas y salidas de stock: mismo handler, distinto ledger
	registerMovementRoutes(protected, "/stock-entries", NewMovementHandler(deps.MovementUC, entity.MovementEntry))
	registerMovementRoutes(protected, "/stock-exits", NewMovementHandler(deps.MovementUC, entity.MovementExit))
}

func registerMovementRoutes(g fiber.Router, prefix string, h *MovementHandler) {
	grp := g.Group(prefix)
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.GetByID)
	grp.Put("/:id", h.Update)
	grp.Patch("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}
