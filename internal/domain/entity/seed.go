package entity

var initialProducts = []Product{
	{Code: "SP000026", Description: "Almendra Tostada", Total: 0},
	{Code: "SP000025", Description: "Avellana Tostada", Total: 0},
	{Code: "SP000024", Description: "Maní Tostado Entero", Total: 0},
	{Code: "SP000078", Description: "Avellana Tostada Troceada", Total: 0},
	{Code: "SP000271", Description: "Maní Tostado Entero Engomado", Total: 427},
	{Code: "SP000272", Description: "Avellana Tostada Engomada", Total: 470},
	{Code: "SP000270", Description: "Almendra Tostada Engomada", Total: 86},
}

// InitialProducts devuelve una copia nueva de la lista semilla.
// Se usa cuando el almacenamiento no tiene productos o el registro está corrupto.
func InitialProducts() []Product {
	return CloneProducts(initialProducts)
}
