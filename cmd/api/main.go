package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/qcommerce-agent/internal/application/analytics"
	"github.com/jhoicas/qcommerce-agent/internal/application/assistant"
	"github.com/jhoicas/qcommerce-agent/internal/application/auth"
	"github.com/jhoicas/qcommerce-agent/internal/application/automation"
	"github.com/jhoicas/qcommerce-agent/internal/application/inventory"
	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
	infraai "github.com/jhoicas/qcommerce-agent/internal/infrastructure/ai"
	infraautomation "github.com/jhoicas/qcommerce-agent/internal/infrastructure/automation"
	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/dataset"
	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/export"
	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/qcommerce-agent/internal/infrastructure/pdf"
	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/postgres"
	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/qcommerce-agent/internal/interfaces/http"
	"github.com/jhoicas/qcommerce-agent/pkg/config"
	"github.com/jhoicas/qcommerce-agent/pkg/logger"
)

// repositories puertos de datos según DATA_SOURCE.
type repositories struct {
	sales     repository.SalesRepository
	inventory repository.InventoryRepository
	actions   repository.ActionLogRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_source", cfg.Data.Source).
		Str("ai_provider", cfg.AI.Provider).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("fuente de datos")
	}
	defer repos.close()

	notifications, closeQueue, err := openQueue(ctx, cfg.Automation)
	if err != nil {
		log.Fatal().Err(err).Msg("cola de notificaciones")
	}
	defer closeQueue()

	// Generador de texto: el configurado + plantilla local como respaldo
	generator, err := infraai.NewTextGenerator(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("generador de recomendaciones")
	}
	fallback := infraai.NewTemplateGenerator("es")

	webhook := infraautomation.NewWebhookClient(cfg.Automation.Endpoint, nil)
	dispatcher := automation.NewDispatcher(webhook, notifications, repos.actions, automation.DispatcherConfig{
		Endpoint:     cfg.Automation.Endpoint,
		Timeout:      cfg.Automation.Timeout(),
		MaxRetries:   cfg.Automation.MaxRetries,
		RetryBackoff: 500 * time.Millisecond,
	}, log)
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		_ = dispatcher.Run(ctx)
	}()

	allocationUC := inventory.NewAllocationUseCase(repos.sales, repos.inventory, cfg.Decision.LookbackDays)
	restockUC := inventory.NewRestockUseCase(repos.sales, repos.inventory, cfg.Decision.RestockWindowDays)
	reportUC := inventory.NewReportUseCase(restockUC, infrapdf.NewRestockReportGenerator(), export.NewPurchaseOrderXML(2))
	insightsUC := analytics.NewInsightsUseCase(repos.sales, repos.inventory, cfg.Decision.CriticalStock)
	actionsUC := automation.NewActionsUseCase(dispatcher, repos.inventory, repos.actions)
	queryUC := assistant.NewQueryUseCase(allocationUC, restockUC, insightsUC, generator, fallback, log).
		WithDefaultThreshold(cfg.Decision.ThresholdRatio)
	authUC := auth.NewAuthUseCase(entity.Operator{
		Username:     cfg.Auth.OperatorUser,
		PasswordHash: cfg.Auth.OperatorPasswordHash,
		Role:         cfg.Auth.OperatorRole,
	}, auth.JWTConfig{
		Secret:     cfg.Auth.Secret,
		ExpMinutes: cfg.Auth.Expiration,
		Issuer:     cfg.Auth.Issuer,
	})
	if cfg.Auth.Secret == "" || cfg.Auth.OperatorPasswordHash == "" {
		log.Warn().Msg("JWT_SECRET u OPERATOR_PASSWORD_HASH vacíos: el login queda deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Quick-commerce Agent API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:                authUC,
		AllocationUC:          allocationUC,
		RestockUC:             restockUC,
		ReportUC:              reportUC,
		ActionsUC:             actionsUC,
		InsightsUC:            insightsUC,
		QueryUC:               queryUC,
		JWTSecret:             cfg.Auth.Secret,
		DefaultThresholdRatio: cfg.Decision.ThresholdRatio,
		AppName:               cfg.App.Name,
		DataSource:            cfg.Data.Source,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Sin nuevas peticiones: se detiene el worker de notificaciones
	stop()
	select {
	case <-dispatcherDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("dispatcher no terminó a tiempo")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepositories PostgreSQL o dataset en memoria (csv/xlsx).
func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	switch cfg.Data.Source {
	case config.DataSourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &repositories{
			sales:     postgres.NewSalesRepository(pool),
			inventory: postgres.NewInventoryRepository(pool),
			actions:   postgres.NewActionLogRepository(pool),
			close:     pool.Close,
		}, nil

	case config.DataSourceCSV, config.DataSourceXLSX:
		var (
			ds  *dataset.Dataset
			err error
		)
		if cfg.Data.Source == config.DataSourceXLSX {
			ds, err = dataset.LoadXLSX(cfg.Data.SalesPath)
		} else {
			ds, err = dataset.LoadCSV(cfg.Data.SalesPath, cfg.Data.InventoryPath, dataset.Options{})
		}
		if err != nil {
			return nil, err
		}
		log.Info().Int("sales", len(ds.Sales)).Int("inventory", len(ds.Inventory)).Msg("dataset cargado en memoria")
		store := memory.NewStore(ds.Sales, ds.Inventory)
		return &repositories{sales: store, inventory: store, actions: store, close: func() {}}, nil

	default:
		return nil, fmt.Errorf("DATA_SOURCE desconocido %q", cfg.Data.Source)
	}
}

// openQueue canal en memoria o lista Redis.
func openQueue(ctx context.Context, cfg config.AutomationConfig) (ports.NotificationQueue, func(), error) {
	if cfg.Queue != config.QueueRedis {
		q := queue.NewMemoryQueue(cfg.QueueSize)
		return q, func() { _ = q.Close() }, nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	q := queue.NewRedisQueue(client, cfg.RedisKey, cfg.QueueSize)
	return q, func() {
		_ = q.Close()
		_ = client.Close()
	}, nil
}
