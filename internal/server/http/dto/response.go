package dto

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success builds a success envelope.
func Success(message string, data any) Response {
	return Response{Status: "success", Message: message, Data: data}
}

// Fail builds a client-fault envelope.
func Fail(message string) Response {
	return Response{Status: "fail", Message: message}
}

// Error builds a server-fault envelope.
func Error(message string) Response {
	return Response{Status: "error", Message: message}
}
