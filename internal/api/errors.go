package api

import (
	"errors"
	"fmt"
)

// ErrNotConfigured blocks every call until tenant credentials exist.
var ErrNotConfigured = errors.New("API não configurada — execute 'ponto config' ou leia o QR code de configuração")

// AuthError is a 401/403 from the API: bad credentials or a rejected PIN.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("credenciais inválidas ou não fornecidas (status %d)", e.Status)
}

// APIError is any other non-2xx response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("erro %d da API: %s", e.Status, e.Body)
}

// CommError wraps transport-level failures (DNS, refused, timeouts).
type CommError struct {
	Err error
}

func (e *CommError) Error() string {
	return "falha na conexão com a API: " + e.Err.Error()
}

func (e *CommError) Unwrap() error { return e.Err }

// UserMessage converts any API client error into the message shown to
// the employee. Unknown errors get a generic connectivity message.
func UserMessage(err error) string {
	var auth *AuthError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "Por favor, configure as credenciais da API para continuar."
	case errors.As(err, &auth):
		return "Credenciais da API inválidas ou não fornecidas. Verifique as configurações."
	default:
		return "Falha na conexão com a API. Verifique a rede."
	}
}
