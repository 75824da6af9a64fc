package entity

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento.
const (
	MovementEntrada MovementType = "Entrada" // entrada, suma al total
	MovementSalida  MovementType = "Salida"  // salida, resta del total
)

// Valid indica si el tipo es Entrada o Salida.
func (t MovementType) Valid() bool {
	return t == MovementEntrada || t == MovementSalida
}

// ParseMovementType convierte el texto del formulario (exacto, distingue mayúsculas).
func ParseMovementType(s string) (MovementType, bool) {
	t := MovementType(s)
	return t, t.Valid()
}

// Transaction registro inmutable de un movimiento aplicado.
// Date es texto de presentación capturado al crear el registro; no se vuelve a interpretar.
// Code y Description son una instantánea del producto antes del movimiento.
type Transaction struct {
	Date             string       `json:"date"`
	Code             string       `json:"code"`
	Description      string       `json:"description"`
	Type             MovementType `json:"type"`
	Quantity         int          `json:"quantity"`
	ResultingBalance int          `json:"resultingBalance"`
}

// CloneTransactions devuelve una copia de la bitácora.
func CloneTransactions(history []Transaction) []Transaction {
	out := make([]Transaction, len(history))
	copy(out, history)
	return out
}
