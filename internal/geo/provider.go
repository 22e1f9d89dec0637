package geo

import (
	"github.com/koresolucoes/ponto/internal/config"
)

// FromConfig builds the provider selected by [geo] mode, or nil when
// geotagging is off.
func FromConfig(cfg config.GeoConfig) Provider {
	switch cfg.Mode {
	case "static":
		return StaticProvider{Coords: Coordinates{
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
		}}
	case "command":
		return CommandProvider{Command: cfg.Command}
	default:
		return nil
	}
}
