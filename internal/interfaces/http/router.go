package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-inventario/internal/application/inventory"
	"github.com/jhoicas/control-inventario/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Controller *inventory.Controller
	CSV        *report.CSVExporter
	PDF        *report.PDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	inventoryHandler := NewInventoryHandler(deps.Controller)

	products := api.Group("/products")
	products.Get("/", inventoryHandler.ListProducts)
	products.Get("/:code", inventoryHandler.GetProduct)

	movements := api.Group("/movements")
	movements.Post("/", inventoryHandler.RegisterMovement)
	movements.Get("/", inventoryHandler.ListMovements)

	api.Get("/error", inventoryHandler.CurrentError)

	// Reportes
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Controller, deps.CSV, deps.PDF)
	reports.Get("/movements.csv", reportHandler.ExportCSV)
	reports.Get("/movements.pdf", reportHandler.ExportPDF)
}
