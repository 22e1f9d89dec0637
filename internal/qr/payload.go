package qr

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrInvalidPayload means the decoded text carried neither credentials
// nor an employee id.
var ErrInvalidPayload = errors.New("formato do QR Code inválido: credenciais não encontradas")

// Payload is the decoded content of a configuration or identification
// QR code.
type Payload struct {
	// Credentials, when the code carried tenant configuration.
	RestaurantID string
	APIKey       string

	// EmployeeID, when the code identified an employee instead.
	EmployeeID string
}

func (p Payload) IsCredentials() bool {
	return p.RestaurantID != "" && p.APIKey != ""
}

// ParsePayload interprets decoded QR text. Formats, in order:
// a JSON object {"restaurantId":..., "apiKey":...}, a two-field
// "id;key" string, or a bare employee id.
func ParsePayload(text string) (Payload, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Payload{}, ErrInvalidPayload
	}

	if strings.HasPrefix(trimmed, "{") {
		var parsed struct {
			RestaurantID string `json:"restaurantId"`
			APIKey       string `json:"apiKey"`
		}
		if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
			return Payload{}, ErrInvalidPayload
		}
		if parsed.RestaurantID == "" || parsed.APIKey == "" {
			return Payload{}, ErrInvalidPayload
		}
		return Payload{RestaurantID: parsed.RestaurantID, APIKey: parsed.APIKey}, nil
	}

	if strings.Contains(trimmed, ";") {
		parts := strings.Split(trimmed, ";")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return Payload{}, ErrInvalidPayload
		}
		return Payload{RestaurantID: parts[0], APIKey: parts[1]}, nil
	}

	return Payload{EmployeeID: trimmed}, nil
}
