package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qcommerce-agent/internal/application/analytics"
	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/application/inventory"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

// AnalyticsHandler KPIs y datos agregados para el tablero.
type AnalyticsHandler struct {
	uc      *analytics.InsightsUseCase
	restock *inventory.RestockUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.InsightsUseCase, restock *inventory.RestockUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, restock: restock}
}

// Insights godoc
// @Summary      KPIs de los últimos 7 días
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InsightsDTO
// @Router       /api/insights [get]
func (h *AnalyticsHandler) Insights(c *fiber.Ctx) error {
	out, err := h.uc.GetInsights(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Ventas agregadas por ciudad y producto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (default 7, max 365)"
// @Success      200  {array}  dto.SalesSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/data/sales [get]
func (h *AnalyticsHandler) Sales(c *fiber.Ctx) error {
	rows, err := h.uc.SalesSummary(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// Cities godoc
// @Summary      Desempeño por ciudad
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (default 7, max 365)"
// @Success      200  {array}  dto.CityPerformanceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/data/cities [get]
func (h *AnalyticsHandler) Cities(c *fiber.Ctx) error {
	rows, err := h.uc.CityPerformance(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// Inventory godoc
// @Summary      Inventario actual con estado de stock
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        city     query  string  false  "Filtrar por ciudad"
// @Param        product  query  string  false  "Filtrar por producto"
// @Success      200  {array}  dto.InventoryItemDTO
// @Router       /api/data/inventory [get]
func (h *AnalyticsHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.restock.Inventory(c.Context(), repository.InventoryFilter{
		City:    c.Query("city"),
		Product: c.Query("product"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromInventory(rows))
}
