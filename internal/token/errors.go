// internal/token/errors.go
package token

import (
	"errors"
	"fmt"
)

// ErrNoMetadata - сервис ответил, но имени и символа у токена нет
var ErrNoMetadata = errors.New("token metadata not found")

// RPCError - объект error из JSON-RPC ответа
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
