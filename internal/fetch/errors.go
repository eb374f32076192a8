// internal/fetch/errors.go
package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrStatus возникает, когда сервер ответил статусом вне диапазона 2xx
	ErrStatus = errors.New("unexpected HTTP status")

	// ErrDecode возникает, когда тело ответа не удалось разобрать как JSON
	ErrDecode = errors.New("invalid JSON response")
)

// StatusError представляет ответ с неуспешным HTTP статусом
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
}

// Error реализует интерфейс error
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error [%s] at %s: status %d", e.Method, e.URL, e.StatusCode)
}

// Unwrap позволяет сравнивать ошибку через errors.Is(err, ErrStatus)
func (e *StatusError) Unwrap() error {
	return ErrStatus
}

// StatusCodeOf возвращает HTTP статус из цепочки ошибок или 0
func StatusCodeOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
