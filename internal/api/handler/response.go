package handler

// Response is the envelope of every API response.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail builds an error envelope.
func Fail(msg string) Response {
	return Response{Success: false, Error: msg}
}
