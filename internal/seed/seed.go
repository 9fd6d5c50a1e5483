// Package seed holds the fixed data the application starts from.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"rippl-backend/internal/tasks"
	"rippl-backend/internal/users"
)

//go:embed seed.yaml
var raw []byte

type Data struct {
	User         users.Profile       `yaml:"user"`
	Achievements []users.Achievement `yaml:"achievements"`
	Tasks        []tasks.Task        `yaml:"tasks"`
}

// Load parses the embedded seed.
func Load() (Data, error) {
	return Parse(raw)
}

func Parse(b []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Data{}, fmt.Errorf("parse seed: %w", err)
	}

	badges := make(map[string]bool, len(d.Achievements))
	for i, a := range d.Achievements {
		if a.ID == "" {
			return Data{}, fmt.Errorf("seed achievement %d: missing id", i)
		}
		if badges[a.ID] {
			return Data{}, fmt.Errorf("seed achievement %s: duplicate id", a.ID)
		}
		badges[a.ID] = true
	}

	seen := make(map[string]bool, len(d.Tasks))
	for i, t := range d.Tasks {
		if t.ID == "" {
			return Data{}, fmt.Errorf("seed task %d: missing id", i)
		}
		if seen[t.ID] {
			return Data{}, fmt.Errorf("seed task %s: duplicate id", t.ID)
		}
		seen[t.ID] = true
		if !t.Status.IsValid() {
			return Data{}, fmt.Errorf("seed task %s: missing status", t.ID)
		}
	}
	return d, nil
}
