package assumption

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadFile reads a YAML assumptions file and merges it over the default set.
// The file uses the same category -> parameter -> value shape as the set
// itself, e.g.:
//
//	revenue_drivers:
//	  mom_growth_rate: 0.12
//	timing_logic:
//	  ypp_activation_delay_months: 4
//
// Unknown keys fail fast rather than silently running the baseline, and the
// merged set is validated before it is returned.
func LoadFile(path string) (*AssumptionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assumptions file: %w", err)
	}

	var overrides map[string]map[string]float64
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse assumptions file %s: %w", path, err)
	}

	return Merge(Default(), overrides)
}

// Merge derives a new set from base with every leaf in overrides applied.
// Every override must name an existing category.parameter.
func Merge(base *AssumptionSet, overrides map[string]map[string]float64) (*AssumptionSet, error) {
	merged := base
	for cat, params := range overrides {
		for name, v := range params {
			derived, err := merged.WithOverride(base.label, cat, name, v)
			if err != nil {
				return nil, fmt.Errorf("unknown assumption '%s.%s' in overrides", cat, name)
			}
			merged = derived
		}
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
