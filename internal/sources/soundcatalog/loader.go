package soundcatalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/snoozelab/holiday-alarm/internal/domain"
)

// CatalogConfig is the top-level structure of an optional sounds.yaml
// file used to extend the built-in alarm sound set with deployment
// specific entries.
type CatalogConfig struct {
	Sounds []domain.AlarmSound `yaml:"sounds"`
}

// Loader handles loading and parsing of the sound catalog file
type Loader struct {
	filePath string
}

// NewLoader creates a new sound catalog loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the catalog file
func (l *Loader) Load() (*CatalogConfig, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound catalog: %w", err)
	}

	var config CatalogConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse sound catalog yaml: %w", err)
	}

	return &config, nil
}

// Apply validates the catalog entries and registers them on the set.
// Entries without an id are rejected; entries without a name get their
// id as display name.
func (c *CatalogConfig) Apply(set *domain.SoundSet) error {
	for i, sound := range c.Sounds {
		if sound.ID == "" {
			return fmt.Errorf("sound catalog entry %d has no id", i)
		}
		if sound.ID == domain.DefaultSound {
			return errors.New(`sound catalog must not define the "default" sentinel`)
		}
		if sound.Name == "" {
			sound.Name = sound.ID
		}
		set.Add(sound)
	}
	return nil
}
