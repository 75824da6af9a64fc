package report

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/control-inventario/internal/domain"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
)

// Nombres de archivo de los reportes de movimientos.
const (
	CSVFilename = "reporte_de_movimientos.csv"
	PDFFilename = "reporte_de_movimientos.pdf"
)

// Codificaciones de salida del CSV.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

var csvHeader = []string{"Fecha", "Código", "Descripción", "Tipo", "Cantidad", "Saldo Resultante"}

// Report archivo listo para descargar.
type Report struct {
	Content     []byte
	Filename    string
	ContentType string
}

// CSVExporter serializa la bitácora como CSV.
type CSVExporter struct {
	encoding string
}

// NewCSVExporter construye el exportador. encoding vacío equivale a UTF-8.
func NewCSVExporter(encoding string) (*CSVExporter, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingUTF8, "utf8":
		return &CSVExporter{encoding: EncodingUTF8}, nil
	case EncodingWindows1252, "cp1252":
		return &CSVExporter{encoding: EncodingWindows1252}, nil
	default:
		return nil, fmt.Errorf("%w: codificación CSV %q", domain.ErrInvalidInput, encoding)
	}
}

// Export genera el CSV en el orden recibido (más reciente primero).
// Con la bitácora vacía devuelve domain.ErrNothingToExport y no genera archivo.
//
// Fecha y Descripción van siempre entre comillas (comillas internas duplicadas); el resto sin comillas.
// Las filas se unen con "\n", sin salto final. La salida es determinista.
func (e *CSVExporter) Export(history []entity.Transaction) (*Report, error) {
	if len(history) == 0 {
		return nil, domain.ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, tx := range history {
		b.WriteByte('\n')
		b.WriteString(quote(tx.Date))
		b.WriteByte(',')
		b.WriteString(tx.Code)
		b.WriteByte(',')
		b.WriteString(quote(tx.Description))
		b.WriteByte(',')
		b.WriteString(string(tx.Type))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(tx.Quantity))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(tx.ResultingBalance))
	}

	if e.encoding == EncodingWindows1252 {
		// Caracteres fuera de la página de códigos se reemplazan en lugar de abortar el reporte.
		encoded, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).String(b.String())
		if err != nil {
			return nil, fmt.Errorf("codificar CSV windows-1252: %w", err)
		}
		return &Report{
			Content:     []byte(encoded),
			Filename:    CSVFilename,
			ContentType: "text/csv;charset=windows-1252",
		}, nil
	}

	return &Report{
		Content:     []byte(b.String()),
		Filename:    CSVFilename,
		ContentType: "text/csv;charset=utf-8",
	}, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
