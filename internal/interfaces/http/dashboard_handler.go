package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dc-flow-dashboard/internal/application/dto"
	"github.com/jhoicas/dc-flow-dashboard/internal/application/summary"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
)

// DashboardHandler maneja los endpoints de resumen por flujo.
type DashboardHandler struct {
	uc *summary.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *summary.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetFilters godoc
// @Summary      Opciones de filtro de un flujo
// @Description  Rango de fechas del origen, valores distintos por dimensión ("All" primero) y filtros activos.
// @Tags         dashboard
// @Produce      json
// @Param        flow  path  string  true  "inbound | outbound"
// @Success      200  {object}  dto.FilterOptionsDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/flows/{flow}/filters [get]
func (h *DashboardHandler) GetFilters(c *fiber.Ctx) error {
	flow, err := entity.ParseFlow(c.Params("flow"))
	if err != nil {
		return writeError(c, err)
	}
	opts, err := h.uc.FilterOptions(flow)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(opts)
}

// GetSummary godoc
// @Summary      Volúmenes y perfil de órdenes de un flujo
// @Description  Aplica los filtros (los omitidos conservan el valor activo) y recalcula las métricas.
// @Tags         dashboard
// @Produce      json
// @Param        flow           path   string  true   "inbound | outbound"
// @Param        start_date     query  string  false  "Inicio del rango (YYYY-MM-DD)"
// @Param        end_date       query  string  false  "Fin del rango (YYYY-MM-DD)"
// @Param        dc_name        query  string  false  "Centro de distribución o All"
// @Param        business_unit  query  string  false  "Unidad de negocio o All (solo outbound)"
// @Param        order_type     query  string  false  "Canal o All (solo outbound)"
// @Success      200  {object}  dto.SummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/flows/{flow}/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	flow, err := entity.ParseFlow(c.Params("flow"))
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.Summary(c.Context(), flow, summaryQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// GetSummaryPDF godoc
// @Summary      Resumen de un flujo en PDF
// @Tags         dashboard
// @Produce      application/pdf
// @Param        flow  path  string  true  "inbound | outbound"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/flows/{flow}/summary.pdf [get]
func (h *DashboardHandler) GetSummaryPDF(c *fiber.Ctx) error {
	flow, err := entity.ParseFlow(c.Params("flow"))
	if err != nil {
		return writeError(c, err)
	}
	data, filename, err := h.uc.SummaryPDF(c.Context(), flow, summaryQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// summaryQuery solo toma los parámetros presentes en la URL.
func summaryQuery(c *fiber.Ctx) dto.SummaryQuery {
	return dto.SummaryQuery{
		StartDate:    optionalQuery(c, "start_date"),
		EndDate:      optionalQuery(c, "end_date"),
		DCName:       optionalQuery(c, "dc_name"),
		BusinessUnit: optionalQuery(c, "business_unit"),
		OrderType:    optionalQuery(c, "order_type"),
	}
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	if !c.Context().QueryArgs().Has(key) {
		return nil
	}
	// Copia: el buffer de fasthttp se reutiliza y el valor queda en la sesión.
	v := strings.Clone(c.Query(key))
	return &v
}

// writeError traduce errores de dominio a códigos HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSchemaMismatch):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SCHEMA_MISMATCH", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownFlow):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_FLOW", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()})
	case errors.Is(err, domain.ErrExportFailed):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
