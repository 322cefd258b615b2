package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load decodes a chart definition from YAML or JSON.
func Load(r io.Reader) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&def); err != nil {
		if err == io.EOF {
			return &def, nil
		}
		return nil, fmt.Errorf("decode chart definition: %w", err)
	}
	return &def, nil
}

// LoadFile reads a chart definition from path.
func LoadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chart definition: %w", err)
	}
	defer f.Close()
	def, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}
