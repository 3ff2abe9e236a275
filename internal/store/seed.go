package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/i474232898/activity-weather/internal/activity"
)

type seedFile struct {
	Profiles []activity.Profile `yaml:"profiles"`
}

// SeedProfiles loads profiles from a YAML file into s. Ids in the file are
// ignored; every profile gets a fresh one. It returns the number loaded.
func SeedProfiles(s *ProfileStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read profiles file: %w", err)
	}
	return seedFromYAML(s, data)
}

func seedFromYAML(s *ProfileStore, data []byte) (int, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("parse profiles file: %w", err)
	}
	for i, p := range seed.Profiles {
		if _, err := s.Create(p); err != nil {
			return i, fmt.Errorf("profile %d (%s): %w", i, p.ActivityType, err)
		}
	}
	return len(seed.Profiles), nil
}
