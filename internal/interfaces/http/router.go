package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qcommerce-agent/internal/application/analytics"
	"github.com/jhoicas/qcommerce-agent/internal/application/assistant"
	"github.com/jhoicas/qcommerce-agent/internal/application/auth"
	"github.com/jhoicas/qcommerce-agent/internal/application/automation"
	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/application/inventory"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	AllocationUC *inventory.AllocationUseCase
	RestockUC    *inventory.RestockUseCase
	ReportUC     *inventory.ReportUseCase
	ActionsUC    *automation.ActionsUseCase
	InsightsUC   *analytics.InsightsUseCase
	QueryUC      *assistant.QueryUseCase
	JWTSecret    string

	DefaultThresholdRatio float64
	AppName               string
	DataSource            string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName, "data_source": deps.DataSource})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token con rol conocido)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleOperator, entity.RoleViewer))
	dispatchers := RequireRole(entity.RoleAdmin, entity.RoleOperator)

	allocationHandler := NewAllocationHandler(deps.AllocationUC, deps.ActionsUC, deps.QueryUC)
	protected.Post("/allocations", allocationHandler.Create)

	restock := protected.Group("/restock")
	restockHandler := NewRestockHandler(deps.RestockUC, deps.ReportUC, deps.ActionsUC, deps.DefaultThresholdRatio)
	restock.Get("/urgent", restockHandler.Urgent)
	restock.Get("/low-stock", restockHandler.LowStock)
	restock.Get("/report.pdf", restockHandler.ReportPDF)
	restock.Get("/purchase-orders.xml", restockHandler.PurchaseOrdersXML)

	actions := protected.Group("/actions")
	actionHandler := NewActionHandler(deps.ActionsUC)
	actions.Get("/", actionHandler.List)
	actions.Post("/restock", dispatchers, actionHandler.TriggerRestock)
	actions.Post("/alert", dispatchers, actionHandler.SendAlert)
	protected.Post("/notify", dispatchers, actionHandler.Notify)

	analyticsHandler := NewAnalyticsHandler(deps.InsightsUC, deps.RestockUC)
	protected.Get("/insights", analyticsHandler.Insights)
	data := protected.Group("/data")
	data.Get("/sales", analyticsHandler.Sales)
	data.Get("/cities", analyticsHandler.Cities)
	data.Get("/inventory", analyticsHandler.Inventory)

	queryHandler := NewQueryHandler(deps.QueryUC)
	protected.Post("/query", queryHandler.Handle)
}

// canDispatch solo admin y operator pueden disparar avisos a la automatización.
func canDispatch(c *fiber.Ctx) bool {
	role := GetRole(c)
	return role == entity.RoleAdmin || role == entity.RoleOperator
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol '" + GetRole(c) + "' no puede disparar notificaciones"})
}
