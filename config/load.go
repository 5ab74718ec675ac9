package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML document. An empty document yields an empty File.
func Parse(data []byte) (*File, error) {
	f := &File{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode configuration (%w)", err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration (%w)", err)
	}

	return f, nil
}

// Load reads and decodes a YAML document from r.
func Load(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration (%w)", err)
	}
	return Parse(data)
}

// LoadFile reads and decodes the YAML file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s (%w)", path, err)
	}
	return Parse(data)
}
