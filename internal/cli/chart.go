// Package cli holds the shared plumbing of the command-line surface:
// natal chart loading and result formatting.
package cli

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
)

// ChartFile is the YAML schema of a natal chart.
// It uses "mapstructure" tags so the YAML keys decode into typed fields.
type ChartFile struct {
	Name   string       `mapstructure:"name"`
	Points []ChartPoint `mapstructure:"points"`
}

// ChartPoint is one natal point entry.
type ChartPoint struct {
	Name      string  `mapstructure:"name"`
	Longitude float64 `mapstructure:"longitude"`
	Class     string  `mapstructure:"class"`
}

// LoadChart reads a natal chart from a YAML file.
// Class defaults to "standard"; point names must be unique and non-empty.
func LoadChart(path string) (string, []domain.NatalPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read chart: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", nil, fmt.Errorf("invalid chart YAML: %w", err)
	}

	var chart ChartFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &chart,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return "", nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return "", nil, fmt.Errorf("invalid chart structure: %w", err)
	}

	if len(chart.Points) == 0 {
		return "", nil, fmt.Errorf("chart %q has no points", path)
	}

	seen := make(map[string]bool, len(chart.Points))
	points := make([]domain.NatalPoint, 0, len(chart.Points))
	for _, p := range chart.Points {
		if p.Name == "" {
			return "", nil, fmt.Errorf("chart point without a name")
		}
		if seen[p.Name] {
			return "", nil, fmt.Errorf("duplicate chart point %q", p.Name)
		}
		seen[p.Name] = true

		class, err := parseClass(p.Class)
		if err != nil {
			return "", nil, fmt.Errorf("chart point %q: %w", p.Name, err)
		}
		points = append(points, domain.NatalPoint{
			Name:      p.Name,
			Longitude: p.Longitude,
			Class:     class,
		})
	}

	return chart.Name, points, nil
}

func parseClass(s string) (domain.PointClass, error) {
	switch s {
	case "", string(domain.ClassStandard):
		return domain.ClassStandard, nil
	case string(domain.ClassLuminary):
		return domain.ClassLuminary, nil
	case string(domain.ClassAngle):
		return domain.ClassAngle, nil
	}
	return "", fmt.Errorf("unknown point class %q (want luminary, angle or standard)", s)
}
