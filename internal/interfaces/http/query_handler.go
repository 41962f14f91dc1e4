package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qcommerce-agent/internal/application/assistant"
	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
)

// QueryHandler consultas estructuradas con recomendación en texto.
type QueryHandler struct {
	uc *assistant.QueryUseCase
}

// NewQueryHandler construye el handler.
func NewQueryHandler(uc *assistant.QueryUseCase) *QueryHandler {
	return &QueryHandler{uc: uc}
}

// Handle godoc
// @Summary      Consulta estructurada (allocate | restock | performance)
// @Description  Calcula los datos de la intención y redacta una recomendación. Si el modelo
//
//	remoto falla se usa la plantilla local y se agrega una advertencia.
//
// @Tags         query
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QueryRequest  true  "intent y parámetros"
// @Success      200   {object}  dto.QueryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/query [post]
func (h *QueryHandler) Handle(c *fiber.Ctx) error {
	var in dto.QueryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Handle(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
