package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/waterops/backend/internal/domain"
	"github.com/waterops/backend/internal/geo"
)

// Road is one named polyline of the reference network.
type Road struct {
	Name   string         `yaml:"name" validate:"required"`
	Points []geo.GeoPoint `yaml:"points" validate:"min=2"`
}

// NetworkConfig is the static map configuration: the local-plane origin, the
// road polylines and the monitored intersections.
type NetworkConfig struct {
	Origin          geo.GeoPoint          `yaml:"origin"`
	ApproachOffsetM float64               `yaml:"approach_offset_m" validate:"gt=0"`
	Roads           []Road                `yaml:"roads" validate:"min=1,dive"`
	Intersections   []domain.Intersection `yaml:"intersections" validate:"dive"`
}

// LoadNetwork reads and validates the network file. The origin is checked
// eagerly so a polar origin fails at startup instead of on the first query.
func LoadNetwork(path string) (*NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read network file: %w", err)
	}

	var cfg NetworkConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse network file: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid network file: %w", err)
	}
	if err := geo.ValidateOrigin(cfg.Origin); err != nil {
		return nil, err
	}
	for _, road := range cfg.Roads {
		for _, p := range road.Points {
			if p.Lon < -180 || p.Lon > 180 || p.Lat < -90 || p.Lat > 90 {
				return nil, fmt.Errorf("config: road %q has out-of-range point (%v, %v)", road.Name, p.Lon, p.Lat)
			}
		}
	}

	return &cfg, nil
}

// Network flattens the roads into the geometry type used for snapping.
func (c *NetworkConfig) Network() geo.Network {
	network := make(geo.Network, 0, len(c.Roads))
	for _, road := range c.Roads {
		network = append(network, geo.Polyline(road.Points))
	}
	return network
}
