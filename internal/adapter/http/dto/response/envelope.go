package response

// Envelope is the uniform response wrapper consumed by the panel front end.
// Non-2xx responses always set Success to false.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func OKWithMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}
