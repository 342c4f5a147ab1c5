package scenario

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
)

// scenarioFile is the HJSON scenario file shape. HJSON so analysts can keep
// comments next to the overrides:
//
//	{
//	  scenarios: [
//	    {
//	      // conversion halves if the niche saturates
//	      name: founder_pain
//	      overrides: [
//	        {category: revenue_drivers, parameter: membership_conversion_rate, value: 0.001}
//	      ]
//	    }
//	  ]
//	}
type scenarioFile struct {
	Scenarios []Definition `json:"scenarios"`
}

// LoadDefinitions parses a scenario file. Empty or override-less scenarios
// are configuration errors.
func LoadDefinitions(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var file scenarioFile
	if err := hjson.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s defines no scenarios", path)
	}
	for _, def := range file.Scenarios {
		if def.Name == "" {
			return nil, fmt.Errorf("scenario file %s contains an unnamed scenario", path)
		}
		if len(def.Overrides) == 0 {
			return nil, fmt.Errorf("scenario '%s' has no overrides", def.Name)
		}
	}
	return file.Scenarios, nil
}
