package entity

// InventoryState estado completo de la sesión: productos y bitácora (más reciente primero).
type InventoryState struct {
	Products []Product     `json:"products"`
	History  []Transaction `json:"history"`
}

// Clone copia ambas colecciones.
func (s InventoryState) Clone() InventoryState {
	return InventoryState{
		Products: CloneProducts(s.Products),
		History:  CloneTransactions(s.History),
	}
}
