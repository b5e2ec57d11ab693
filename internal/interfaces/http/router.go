package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dihegorc/impressao3d-manager/internal/application/accessory"
	"github.com/dihegorc/impressao3d-manager/internal/application/auth"
	"github.com/dihegorc/impressao3d-manager/internal/application/history"
	"github.com/dihegorc/impressao3d-manager/internal/application/product"
	"github.com/dihegorc/impressao3d-manager/internal/application/queue"
	"github.com/dihegorc/impressao3d-manager/internal/application/sales"
	"github.com/dihegorc/impressao3d-manager/internal/application/settings"
	"github.com/dihegorc/impressao3d-manager/internal/application/stock"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	Ledger        *stock.Ledger
	History       *history.History
	ProductUC     *product.UseCase
	AccessoryUC   *accessory.UseCase
	AccessoryRepo repository.AccessoryRepository
	SettingsUC    *settings.UseCase
	QueueUC       *queue.Queue
	SalesUC       *sales.UseCase
	AuthUC        *auth.UseCase
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Estoque de filamento e histórico
	stockHandler := NewStockHandler(deps.Ledger, deps.History)
	filaments := protected.Group("/filaments")
	filaments.Get("/groups", stockHandler.ListGroups)
	filaments.Get("/spools", stockHandler.ListSpools)
	filaments.Get("/available", stockHandler.Available)
	filaments.Post("/restock", stockHandler.Restock)
	filaments.Post("/consume", stockHandler.Consume)
	filaments.Post("/spools/:id/adjust", stockHandler.Adjust)
	protected.Get("/usage", stockHandler.ListUsage)

	// Catálogo de receitas e análise de custo
	productHandler := NewProductHandler(deps.ProductUC, deps.SettingsUC, deps.Ledger, deps.AccessoryRepo)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/cost", productHandler.Cost)

	// Catálogo de acessórios
	accessoryHandler := NewAccessoryHandler(deps.AccessoryUC)
	accessories := protected.Group("/accessories")
	accessories.Get("/", accessoryHandler.List)
	accessories.Post("/", accessoryHandler.Create)
	accessories.Put("/:id", accessoryHandler.Update)
	accessories.Delete("/:id", accessoryHandler.Delete)

	// Fila de produção e acabados
	queueHandler := NewQueueHandler(deps.QueueUC)
	queueGroup := protected.Group("/queue")
	queueGroup.Get("/", queueHandler.List)
	queueGroup.Post("/", queueHandler.Enqueue)
	queueGroup.Get("/shortfall", queueHandler.PreviewShortfall)
	queueGroup.Post("/:id/reorder", queueHandler.Reorder)
	queueGroup.Post("/:id/start", queueHandler.Start)
	queueGroup.Post("/:id/finishing", queueHandler.StartFinishing)
	queueGroup.Post("/:id/finish", queueHandler.Finish)
	queueGroup.Post("/:id/cancel", queueHandler.Cancel)
	protected.Get("/finished-goods", queueHandler.ListFinishedGoods)

	// Vendas
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Post("/", salesHandler.Create)

	// Parâmetros globais de custo
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", settingsHandler.Update)
}
