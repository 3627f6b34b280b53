package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// presentationScale decimales con los que se presentan los montos (centavos).
const presentationScale = 2
