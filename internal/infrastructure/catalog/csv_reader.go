// Package catalog importa listas de productos desde archivos CSV (code;description;total).
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/control-inventario/internal/domain"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
)

// ReadOptions opciones de lectura.
type ReadOptions struct {
	// Latin1 decodifica la entrada desde ISO-8859-1 (exportaciones de hojas de cálculo antiguas).
	Latin1 bool
}

// ReadProducts lee productos de r. El separador es ';' o ',' (se detecta en la primera línea).
// Una primera fila cuyo total no es numérico se toma como encabezado y se ignora.
// Códigos vacíos o duplicados y totales negativos devuelven domain.ErrInvalidInput / domain.ErrDuplicate.
func ReadProducts(r io.Reader, opts ReadOptions) ([]entity.Product, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectComma(data)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	products := []entity.Product{}
	seen := make(map[string]bool)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: catálogo línea %d: %v", domain.ErrInvalidInput, line, err)
		}

		code := strings.TrimSpace(rec[0])
		desc := strings.TrimSpace(rec[1])
		total, convErr := strconv.Atoi(strings.TrimSpace(rec[2]))
		if convErr != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("%w: catálogo línea %d: total %q", domain.ErrInvalidInput, line, rec[2])
		}
		if code == "" {
			return nil, fmt.Errorf("%w: catálogo línea %d: código vacío", domain.ErrInvalidInput, line)
		}
		if total < 0 {
			return nil, fmt.Errorf("%w: catálogo línea %d: total negativo", domain.ErrInvalidInput, line)
		}
		if seen[code] {
			return nil, fmt.Errorf("%w: catálogo línea %d: código %s", domain.ErrDuplicate, line, code)
		}
		seen[code] = true
		products = append(products, entity.Product{Code: code, Description: desc, Total: total})
	}
	return products, nil
}

func detectComma(head []byte) rune {
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") >= strings.Count(line, ",") && strings.Contains(line, ";") {
		return ';'
	}
	return ','
}
