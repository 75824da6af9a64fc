package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-inventario/internal/application/dto"
	"github.com/jhoicas/control-inventario/internal/application/inventory"
	"github.com/jhoicas/control-inventario/internal/application/report"
	"github.com/jhoicas/control-inventario/internal/domain"
)

// ReportHandler descarga de reportes de la bitácora.
type ReportHandler struct {
	uc  *inventory.Controller
	csv *report.CSVExporter
	pdf *report.PDFUseCase
}

// NewReportHandler construye el handler. pdf puede ser nil (ruta PDF responde 404).
func NewReportHandler(uc *inventory.Controller, csv *report.CSVExporter, pdf *report.PDFUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, csv: csv, pdf: pdf}
}

// ExportCSV godoc
// @Summary      Descargar bitácora en CSV
// @Description  Con la bitácora vacía responde 200 con el aviso NOTHING_TO_EXPORT y no genera archivo.
// @Tags         reports
// @Produce      text/csv
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/movements.csv [get]
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	rep, err := h.csv.Export(h.uc.History())
	return h.send(c, rep, err)
}

// ExportPDF godoc
// @Summary      Descargar bitácora en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/movements.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reporte PDF no disponible"})
	}
	state := h.uc.State()
	rep, err := h.pdf.Export(c.UserContext(), state.History, state.Products)
	return h.send(c, rep, err)
}

func (h *ReportHandler) send(c *fiber.Ctx, rep *report.Report, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrNothingToExport) {
			return c.JSON(dto.NoticeResponse{Code: "NOTHING_TO_EXPORT", Message: "No hay movimientos para generar un reporte."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, rep.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, rep.Filename))
	return c.Send(rep.Content)
}
