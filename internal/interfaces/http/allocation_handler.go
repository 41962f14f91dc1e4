package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qcommerce-agent/internal/application/assistant"
	"github.com/jhoicas/qcommerce-agent/internal/application/automation"
	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/application/inventory"
	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// AllocationHandler reparto de unidades entre ciudades.
type AllocationHandler struct {
	uc        *inventory.AllocationUseCase
	actions   *automation.ActionsUseCase
	assistant *assistant.QueryUseCase
}

// NewAllocationHandler construye el handler. assistant puede ser nil (sin texto de recomendación).
func NewAllocationHandler(uc *inventory.AllocationUseCase, actions *automation.ActionsUseCase, assistant *assistant.QueryUseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc, actions: actions, assistant: assistant}
}

// Create godoc
// @Summary      Repartir unidades de un producto entre ciudades
// @Description  Reparto proporcional a las ventas de la ventana reciente. La suma siempre es
//
//	total_quantity. Con notify=true se encola el aviso a la automatización; un fallo
//	del aviso se reporta en warnings sin afectar el resultado.
//
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocationRequest  true  "product, total_quantity, lookback_days, notify"
// @Success      200   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/allocations [post]
func (h *AllocationHandler) Create(c *fiber.Ctx) error {
	var in dto.AllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Notify && !canDispatch(c) {
		return forbidden(c)
	}

	res, err := h.uc.Allocate(c.Context(), entity.AllocationRequest{
		Product:       in.Product,
		TotalQuantity: in.TotalQuantity,
	}, in.LookbackDays)
	if err != nil {
		return writeError(c, err)
	}

	out := dto.FromAllocation(res)
	if h.assistant != nil {
		text, warnings := h.assistant.Recommend(c.Context(), ports.Recommendation{Intent: dto.IntentAllocate, Allocation: res})
		out.Recommendation = text
		out.Warnings = append(out.Warnings, warnings...)
	}
	if in.Notify {
		id, err := h.actions.NotifyAllocation(c.Context(), res)
		out.ActionID = id
		if err != nil {
			out.Warnings = append(out.Warnings, err.Error())
		}
	}
	return c.JSON(out)
}
