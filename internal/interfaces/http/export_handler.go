package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dc-flow-dashboard/internal/application/dto"
	"github.com/jhoicas/dc-flow-dashboard/internal/application/summary"
)

// ExportHandler exportación a archivo plano.
type ExportHandler struct {
	uc *summary.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *summary.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar los resúmenes inbound y outbound
// @Description  Recalcula ambos flujos con los filtros enviados (o los activos) y escribe
//               un CSV por flujo, o un XLSX con una hoja por flujo.
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExportRequest  false  "Filtros por flujo y formato"
// @Success      200  {object}  dto.ExportResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/export [post]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	res, err := h.uc.Export(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
