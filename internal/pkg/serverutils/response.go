// FILE: internal/pkg/serverutils/response.go
package serverutils

// Response is the envelope of every non-chat success response.
type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// ErrorBody is the error wire shape shared by every endpoint.
type ErrorBody struct {
	Error       string            `json:"error"`
	Message     string            `json:"message,omitempty"`
	Details     string            `json:"details,omitempty"`
	Type        string            `json:"type,omitempty"`
	RateLimited bool              `json:"rate_limited,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

func SuccessResponse[T any](message string, data T) *Response[T] {
	return &Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}
