package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Coordinates is one device position fix.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// Closed set of acquisition failures. A punch that needs coordinates
// aborts on any of these with a cause-specific message, without ever
// reaching the API.
var (
	ErrPermissionDenied = errors.New("Permissão de localização negada pelo usuário.")
	ErrUnavailable      = errors.New("Informação de localização está indisponível.")
	ErrTimeout          = errors.New("A requisição para obter a localização expirou.")
)

// Provider acquires a single fresh position fix. Implementations must
// not serve cached positions.
type Provider interface {
	Current(ctx context.Context) (Coordinates, error)
}

// Resolve runs one acquisition against the provider with a hard
// timeout. Timeouts map to ErrTimeout; everything the provider reports
// stays within the closed failure set.
func Resolve(ctx context.Context, p Provider, timeout time.Duration) (Coordinates, error) {
	if p == nil {
		return Coordinates{}, ErrUnavailable
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	coords, err := p.Current(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Coordinates{}, ErrTimeout
		}
		if errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrUnavailable) {
			return Coordinates{}, err
		}
		return Coordinates{}, ErrUnavailable
	}
	return coords, nil
}

// StaticProvider serves the fixed coordinates of a wall-mounted kiosk.
type StaticProvider struct {
	Coords Coordinates
}

func (p StaticProvider) Current(ctx context.Context) (Coordinates, error) {
	if p.Coords.Latitude == 0 && p.Coords.Longitude == 0 {
		return Coordinates{}, ErrUnavailable
	}
	return p.Coords, nil
}

// CommandProvider shells out to a locator command (termux-location
// style) that prints either a JSON object with latitude/longitude or a
// bare "lat lon" pair.
type CommandProvider struct {
	Command string
}

func (p CommandProvider) Current(ctx context.Context) (Coordinates, error) {
	parts := strings.Fields(p.Command)
	if len(parts) == 0 {
		return Coordinates{}, ErrUnavailable
	}

	out, err := exec.CommandContext(ctx, parts[0], parts[1:]...).Output()
	if err != nil {
		if ctx.Err() != nil {
			return Coordinates{}, ErrTimeout
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && strings.Contains(strings.ToLower(string(exitErr.Stderr)), "permission") {
			return Coordinates{}, ErrPermissionDenied
		}
		return Coordinates{}, ErrUnavailable
	}

	return parseOutput(string(out))
}

func parseOutput(out string) (Coordinates, error) {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return Coordinates{}, ErrUnavailable
	}

	if strings.HasPrefix(trimmed, "{") {
		var coords Coordinates
		if err := json.Unmarshal([]byte(trimmed), &coords); err != nil {
			return Coordinates{}, fmt.Errorf("%w (saída inválida)", ErrUnavailable)
		}
		return coords, nil
	}

	fields := strings.Fields(strings.ReplaceAll(trimmed, ",", " "))
	if len(fields) < 2 {
		return Coordinates{}, fmt.Errorf("%w (saída inválida)", ErrUnavailable)
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w (saída inválida)", ErrUnavailable)
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w (saída inválida)", ErrUnavailable)
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}
