package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/control-inventario/internal/domain"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
)

// MovementsPDFGenerator genera la representación PDF de la bitácora.
type MovementsPDFGenerator interface {
	GenerateMovementsPDF(ctx context.Context, history []entity.Transaction, products []entity.Product, generatedAt time.Time) ([]byte, error)
}

// PDFUseCase arma el reporte PDF de movimientos con el mismo criterio de bitácora vacía que el CSV.
type PDFUseCase struct {
	generator MovementsPDFGenerator
	now       func() time.Time
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(generator MovementsPDFGenerator) *PDFUseCase {
	return &PDFUseCase{generator: generator, now: time.Now}
}

// Export devuelve domain.ErrNothingToExport si no hay movimientos.
func (uc *PDFUseCase) Export(ctx context.Context, history []entity.Transaction, products []entity.Product) (*Report, error) {
	if len(history) == 0 {
		return nil, domain.ErrNothingToExport
	}
	doc, err := uc.generator.GenerateMovementsPDF(ctx, history, products, uc.now())
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return &Report{Content: doc, Filename: PDFFilename, ContentType: "application/pdf"}, nil
}
