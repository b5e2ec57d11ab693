package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dihegorc/impressao3d-manager/internal/application/accessory"
	"github.com/dihegorc/impressao3d-manager/internal/application/auth"
	"github.com/dihegorc/impressao3d-manager/internal/application/history"
	"github.com/dihegorc/impressao3d-manager/internal/application/product"
	"github.com/dihegorc/impressao3d-manager/internal/application/queue"
	"github.com/dihegorc/impressao3d-manager/internal/application/sales"
	"github.com/dihegorc/impressao3d-manager/internal/application/settings"
	"github.com/dihegorc/impressao3d-manager/internal/application/stock"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
	"github.com/dihegorc/impressao3d-manager/internal/infrastructure/memory"
	"github.com/dihegorc/impressao3d-manager/internal/infrastructure/sqlite"
	httpRouter "github.com/dihegorc/impressao3d-manager/internal/interfaces/http"
	"github.com/dihegorc/impressao3d-manager/pkg/config"
	"github.com/dihegorc/impressao3d-manager/pkg/logger"
)

// repos reúne os portes de persistência, independente do adaptador.
type repos struct {
	Filaments     repository.FilamentRepository
	Usage         repository.UsageRepository
	Products      repository.ProductRepository
	Accessories   repository.AccessoryRepository
	Jobs          repository.PrintJobRepository
	FinishedGoods repository.FinishedGoodRepository
	Sales         repository.SaleRepository
	Settings      repository.SettingsRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	// DB_PATH vazio mantém tudo em memória (modo desenvolvimento).
	var r repos
	if cfg.DB.Path != "" {
		store, err := sqlite.Open(cfg.DB.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("abrir banco sqlite")
		}
		defer store.Close()
		log.Info().Str("path", cfg.DB.Path).Msg("persistência sqlite")
		r = repos{
			Filaments:     store.Filaments,
			Usage:         store.Usage,
			Products:      store.Products,
			Accessories:   store.Accessories,
			Jobs:          store.Jobs,
			FinishedGoods: store.FinishedGoods,
			Sales:         store.Sales,
			Settings:      store.Settings,
		}
	} else {
		store := memory.NewStore()
		log.Warn().Msg("DB_PATH vazio: dados apenas em memória")
		r = repos{
			Filaments:     store.Filaments,
			Usage:         store.Usage,
			Products:      store.Products,
			Accessories:   store.Accessories,
			Jobs:          store.Jobs,
			FinishedGoods: store.FinishedGoods,
			Sales:         store.Sales,
			Settings:      store.Settings,
		}
	}

	ledger := stock.NewLedger(r.Filaments, r.Usage)
	historyUC := history.New(r.Usage)
	productUC := product.New(r.Products)
	accessoryUC := accessory.New(r.Accessories)
	settingsUC := settings.New(r.Settings)
	queueUC := queue.New(r.Jobs, r.Products, r.FinishedGoods, ledger)
	salesUC := sales.New(r.Sales, r.FinishedGoods, r.Products)
	authUC := auth.New(auth.Operator{
		Username:     cfg.Auth.Username,
		PasswordHash: cfg.Auth.PasswordHash,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:        ledger,
		History:       historyUC,
		ProductUC:     productUC,
		AccessoryUC:   accessoryUC,
		AccessoryRepo: r.Accessories,
		SettingsUC:    settingsUC,
		QueueUC:       queueUC,
		SalesUC:       salesUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
