package dto

// Response es el sobre uniforme de todas las respuestas de la API.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// OK construye una respuesta exitosa.
func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail construye una respuesta de error con mensaje (y detalle opcional).
func Fail(message, detail string) Response {
	return Response{Success: false, Message: message, Error: detail}
}

// FailValidation construye una respuesta 422 con errores por campo.
func FailValidation(fields map[string][]string) Response {
	return Response{Success: false, Message: "Error de validación", Errors: fields}
}
