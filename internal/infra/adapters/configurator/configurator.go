// configurator is an adapter for loading the station and podcast
// configuration from a YAML file. It implements the
// ports.ForConfiguring interface.
package configurator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"gopkg.in/yaml.v3"
)

var DefaultConfigFile string = "podcasts.yaml"

// configurator.New returns a local file-based configurator that
// satisfies the ports.ForConfiguring port interface.
func New(configFile string) ports.ForConfiguring {
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	return &forConfiguring{
		configFile: configFile,
	}
}

// Implements the ports.ForConfiguring interface.
type forConfiguring struct {
	configFile string
}

func (c *forConfiguring) Load(ctx context.Context) (*model.Stations, error) {
	l := logger.FromContext(ctx)
	f, err := os.Open(c.configFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	stations, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.configFile, err)
	}
	l.Debug("Loaded configuration", "file", c.configFile, "stations", len(stations.Stations), "podcasts", len(stations.Shows()))
	return stations, nil
}

// Decode reads a configuration document from r, rejecting unknown
// keys, then applies defaults and validates the result.
func Decode(r io.Reader) (*model.Stations, error) {
	var stations model.Stations
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&stations); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("configuration is empty")
		}
		return nil, fmt.Errorf("unable to unmarshal yaml: %w", err)
	}
	stations.SetDefaults()
	if err := stations.Validate(); err != nil {
		return nil, err
	}
	return &stations, nil
}
