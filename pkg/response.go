package pkg

// Response is the envelope used by the probe endpoints.
type Response struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// NewResponse creates a new Response with the given code, data, and message.
func NewResponse(code int, data any, message string) Response {
	return Response{Code: code, Data: data, Message: message}
}

// ErrorBody is the JSON body returned for failed paste operations.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the JSON body carrying only a human readable message.
type MessageBody struct {
	Message string `json:"message"`
}
