package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NoticeResponse aviso no bloqueante (ej. no hay movimientos para exportar).
type NoticeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
