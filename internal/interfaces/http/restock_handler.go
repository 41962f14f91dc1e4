package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qcommerce-agent/internal/application/automation"
	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/application/inventory"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
)

// RestockHandler reposición urgente, stock bajo y sus documentos.
type RestockHandler struct {
	uc           *inventory.RestockUseCase
	reports      *inventory.ReportUseCase
	actions      *automation.ActionsUseCase
	defaultRatio float64
}

// NewRestockHandler construye el handler.
func NewRestockHandler(
	uc *inventory.RestockUseCase,
	reports *inventory.ReportUseCase,
	actions *automation.ActionsUseCase,
	defaultRatio float64,
) *RestockHandler {
	return &RestockHandler{uc: uc, reports: reports, actions: actions, defaultRatio: defaultRatio}
}

// Urgent godoc
// @Summary      Ítems de reposición urgente
// @Description  Ordenados del más urgente al menos urgente. notify=true encola una alerta
//
//	por cada uno de los `limit` primeros (default 5).
//
// @Tags         restock
// @Security     Bearer
// @Produce      json
// @Param        threshold_ratio  query  number  false  "Umbral sobre la demanda reciente (default 0.2)"
// @Param        notify           query  bool    false  "Encolar alertas"
// @Param        limit            query  int     false  "Alertas a encolar"
// @Success      200  {object}  dto.RestockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/restock/urgent [get]
func (h *RestockHandler) Urgent(c *fiber.Ctx) error {
	ratio, err := h.thresholdRatio(c)
	if err != nil {
		return writeError(c, err)
	}
	notify := c.QueryBool("notify", false)
	if notify && !canDispatch(c) {
		return forbidden(c)
	}

	alerts, err := h.uc.FindUrgentRestocks(c.Context(), ratio)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.RestockResponse{
		ThresholdRatio: ratio,
		WindowDays:     h.uc.WindowDays(),
		Total:          len(alerts),
		Alerts:         dto.FromRestockAlerts(alerts),
	}
	if notify && len(alerts) > 0 {
		ids, warnings := h.actions.NotifyRestockAlerts(c.Context(), alerts, c.QueryInt("limit", automation.DefaultRestockNotifyLimit))
		if len(ids) > 0 {
			out.ActionID = ids[0]
		}
		for _, w := range warnings {
			out.Warnings = append(out.Warnings, w.Error())
		}
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock en o por debajo del nivel de reorden
// @Tags         restock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryItemDTO
// @Router       /api/restock/low-stock [get]
func (h *RestockHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.uc.LowStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "items": dto.FromInventory(rows)})
}

// ReportPDF godoc
// @Summary      Reporte PDF de reposición
// @Tags         restock
// @Security     Bearer
// @Produce      application/pdf
// @Param        threshold_ratio  query  number  false  "Umbral (default 0.2)"
// @Success      200
// @Router       /api/restock/report.pdf [get]
func (h *RestockHandler) ReportPDF(c *fiber.Ctx) error {
	ratio, err := h.thresholdRatio(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.reports.RestockPDF(c.Context(), ratio)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="restock-report.pdf"`)
	return c.Send(doc)
}

// PurchaseOrdersXML godoc
// @Summary      Órdenes de compra sugeridas por proveedor (XML)
// @Tags         restock
// @Security     Bearer
// @Produce      application/xml
// @Param        threshold_ratio  query  number  false  "Umbral (default 0.2)"
// @Success      200
// @Router       /api/restock/purchase-orders.xml [get]
func (h *RestockHandler) PurchaseOrdersXML(c *fiber.Ctx) error {
	ratio, err := h.thresholdRatio(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.reports.PurchaseOrdersXML(c.Context(), ratio)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(doc)
}

// thresholdRatio lee el parámetro; ausente usa el default configurado.
// El rango lo valida el caso de uso.
func (h *RestockHandler) thresholdRatio(c *fiber.Ctx) (float64, error) {
	raw := c.Query("threshold_ratio")
	if raw == "" {
		return h.defaultRatio, nil
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.NewValidationError("threshold_ratio", "debe ser numérico")
	}
	return ratio, nil
}
