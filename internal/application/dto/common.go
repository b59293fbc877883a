package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para acciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
}
