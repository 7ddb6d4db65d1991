package identifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTeamCodes reads a team-to-department-code table from a YAML file:
//
//	Software: SOFT
//	Firmware: FW
//
// Codes must be 2-4 uppercase letters to keep generated IDs within the
// canonical shape.
func LoadTeamCodes(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading team codes file: %w", err)
	}

	var codes map[string]string
	if err := yaml.Unmarshal(data, &codes); err != nil {
		return nil, fmt.Errorf("parsing team codes YAML: %w", err)
	}

	for team, code := range codes {
		if len(code) < 2 || len(code) > 4 {
			return nil, fmt.Errorf("team %q: code %q must be 2-4 characters", team, code)
		}
		for _, r := range code {
			if r < 'A' || r > 'Z' {
				return nil, fmt.Errorf("team %q: code %q must be uppercase letters", team, code)
			}
		}
	}
	return codes, nil
}
