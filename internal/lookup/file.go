package lookup

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a directory from a YAML or JSON file holding a flat
// code: name mapping. Codes are upper-cased and trimmed; empty codes are skipped.
func LoadFile(path string) (Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a YAML or JSON code: name mapping.
func Decode(data []byte) (Directory, error) {
	raw := make(map[string]string)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode directory: %w", err)
	}

	dir := make(Directory, len(raw))
	for code, name := range raw {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		dir[code] = strings.TrimSpace(name)
	}
	return dir, nil
}
