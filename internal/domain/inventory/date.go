package inventory

import (
	"fmt"
	"time"
)

// DateFormatter convierte el instante del movimiento en el texto que se guarda en la bitácora.
type DateFormatter interface {
	Format(t time.Time) string
}

// DisplayDateFormatter formato de presentación d/m/aaaa H:mm:ss (ej. "1/1/2024 10:00:00").
// Loc nil usa la zona del instante recibido.
type DisplayDateFormatter struct {
	Loc *time.Location
}

// Format implementa DateFormatter.
func (f DisplayDateFormatter) Format(t time.Time) string {
	if f.Loc != nil {
		t = t.In(f.Loc)
	}
	return FormatDate(t)
}

// FormatDate día y mes sin ceros a la izquierda; minutos y segundos con dos dígitos.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %d:%02d:%02d",
		t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute(), t.Second())
}
