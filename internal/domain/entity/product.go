package entity

// Product representa un producto del inventario con su total acumulado.
// Code es único dentro de la colección; Total nunca es negativo y solo cambia vía movimientos.
type Product struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Total       int    `json:"total"`
}

// CloneProducts devuelve una copia superficial de la colección (los valores son planos).
func CloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// FindProduct busca por código exacto (distingue mayúsculas). Devuelve el índice o -1.
func FindProduct(products []Product, code string) int {
	for i := range products {
		if products[i].Code == code {
			return i
		}
	}
	return -1
}
