package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dc-flow-dashboard/internal/application/dto"
	"github.com/jhoicas/dc-flow-dashboard/internal/application/summary"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SummaryUC *summary.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok"})
	})

	api := app.Group("/api")

	flows := api.Group("/flows")
	dashboardHandler := NewDashboardHandler(deps.SummaryUC)
	flows.Get("/:flow/filters", dashboardHandler.GetFilters)
	flows.Get("/:flow/summary.pdf", dashboardHandler.GetSummaryPDF)
	flows.Get("/:flow/summary", dashboardHandler.GetSummary)

	exportHandler := NewExportHandler(deps.SummaryUC)
	api.Post("/export", exportHandler.Export)
}
