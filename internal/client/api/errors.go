package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Reconciliation failure taxonomy. Every error returned by Client wraps exactly
// one of these.
var (
	// ErrUnauthorized - вызывающий не имеет права выполнять мутацию (401/403 или нет токена)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNetworkFailure - запрос не был завершён (транспорт, таймаут, шлюз недоступен)
	ErrNetworkFailure = errors.New("network failure")

	// ErrServerRejected - сервер отклонил запрос (валидация, бизнес-правила)
	ErrServerRejected = errors.New("server rejected request")
)

// StatusError описывает неуспешный HTTP ответ сервера
type StatusError struct {
	kind       error
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Unwrap returns the taxonomy sentinel for the status
func (e *StatusError) Unwrap() error {
	return e.kind
}

func newStatusError(code int, message string) *StatusError {
	return &StatusError{
		StatusCode: code,
		Message:    message,
		kind:       classifyStatus(code),
	}
}

// classifyStatus maps a non-2xx status to the taxonomy.
// Gateway-level failures mean the request never reached the backend.
func classifyStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrNetworkFailure
	default:
		return ErrServerRejected
	}
}
