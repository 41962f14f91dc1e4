package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qcommerce-agent/internal/application/automation"
	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
)

// ActionHandler acciones hacia la automatización y su traza.
type ActionHandler struct {
	uc *automation.ActionsUseCase
}

// NewActionHandler construye el handler.
func NewActionHandler(uc *automation.ActionsUseCase) *ActionHandler {
	return &ActionHandler{uc: uc}
}

// TriggerRestock godoc
// @Summary      Orden de reposición manual
// @Tags         actions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockOrderRequest  true  "city, product, quantity"
// @Success      202   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/actions/restock [post]
func (h *ActionHandler) TriggerRestock(c *fiber.Ctx) error {
	var in dto.RestockOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.TriggerRestock(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// SendAlert godoc
// @Summary      Alerta libre al equipo de operaciones
// @Tags         actions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AlertRequest  true  "message, priority, recipients"
// @Success      202   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/actions/alert [post]
func (h *ActionHandler) SendAlert(c *fiber.Ctx) error {
	var in dto.AlertRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.SendAlert(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// List godoc
// @Summary      Acciones recientes
// @Tags         actions
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo (default 50, max 200)"
// @Success      200  {array}  dto.ActionLogDTO
// @Router       /api/actions [get]
func (h *ActionHandler) List(c *fiber.Ctx) error {
	rows, err := h.uc.RecentActions(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "actions": rows})
}

// Notify godoc
// @Summary      Entrega síncrona de un evento a la automatización
// @Description  A diferencia del resto de acciones no pasa por la cola: responde 502 si el
//
//	endpoint no acepta el evento tras el reintento.
//
// @Tags         actions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NotifyRequest  true  "event, payload"
// @Success      200   {object}  dto.NotifyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.NotifyResponse
// @Router       /api/notify [post]
func (h *ActionHandler) Notify(c *fiber.Ctx) error {
	var in dto.NotifyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.NotifyNow(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotification) && out != nil {
			return c.Status(fiber.StatusBadGateway).JSON(out)
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}
