// Package apierror defines the single error envelope the cadastro API speaks.
// Every 4xx/5xx body is {"detail": ...}, optionally carrying per-field
// validation messages, so the frontend has exactly one error shape to parse
// and internals (SQL errors, stack traces) never reach a client.
package apierror

// APIError is the wire envelope. Fields is only present on validation
// failures, keyed by the offending request field.
type APIError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func NewValidation(fields map[string]string) *APIError {
	return &APIError{Detail: "Erro de validação", Fields: fields}
}
