// Package recording reads manifests listing the parameters physically
// present in a flight recording.
//
//	recording: flight-0042
//	parameters:
//	  - Airspeed
//	  - Altitude STD
package recording

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/flightgraph/internal/availability"
)

// Manifest is one recording's parameter list.
type Manifest struct {
	// Recording identifies the recording. Defaults to the file name.
	Recording  string   `yaml:"recording"`
	Parameters []string `yaml:"parameters"`
}

// Parse decodes a manifest. Duplicate names are tolerated; blank names are
// not.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode recording manifest: %w", err)
	}
	for i, p := range m.Parameters {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("recording manifest: parameter %d is blank", i)
		}
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Recording == "" {
		m.Recording = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// Availability returns the manifest's parameters as a set.
func (m *Manifest) Availability() availability.Set {
	return availability.New(m.Parameters...)
}
