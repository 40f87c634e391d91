// Copyright (C) 2026 The itemcache Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads the small YAML document that configures the
// itemcache demo driver (cmd/itemcache-sim): queue capacity, producer
// pool size, and logging verbosity. The cache package itself takes no
// dependency on this package — New takes plain arguments — so library
// embedders never have to carry a config-file format they didn't ask
// for.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config is the top-level document shape. sigs.k8s.io/yaml converts
// YAML to JSON before unmarshaling, so every field uses a `json` tag
// rather than a `yaml` one.
type Config struct {
	// QueueCapacity sizes the Work Queue's ring buffer. Zero falls
	// back to itemcache.DefaultQueueCapacity; Load rejects a negative
	// value.
	QueueCapacity int `json:"queueCapacity,omitempty"`

	// Producers is the number of concurrent simulated probe
	// goroutines the demo driver starts.
	Producers int `json:"producers,omitempty"`

	// Verbose turns on per-item logging in the demo driver; normally
	// only fatal Worker conditions are logged.
	Verbose bool `json:"verbose,omitempty"`
}

const (
	// DefaultProducers is used when a loaded document omits Producers.
	DefaultProducers = 4
)

// Load reads and parses the YAML document at path. A missing or empty
// Producers/QueueCapacity is left at zero; callers apply their own
// defaults (see DefaultProducers and itemcache.DefaultQueueCapacity)
// rather than Load silently picking one. An omitted field and one
// explicitly set to zero both load as zero. A negative Producers or
// QueueCapacity is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if c.Producers < 0 {
		return nil, fmt.Errorf("config: producers must not be negative")
	}
	if c.QueueCapacity < 0 {
		return nil, fmt.Errorf("config: queueCapacity must not be negative")
	}
	return &c, nil
}
