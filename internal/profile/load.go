package profile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a profiles file.
type File struct {
	Profiles []Profile `yaml:"profiles"`
}

// ParseFile decodes a profiles document. Unknown keys are rejected.
func ParseFile(data []byte) (File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("parse profiles: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse profiles: multiple YAML documents are not supported")
		}
		return File{}, fmt.Errorf("parse profiles: %w", err)
	}
	return f, nil
}

// Load reads a profiles file and adds every profile to r.
func (r *Registry) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return err
	}
	for _, p := range f.Profiles {
		if err := r.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// Marshal renders profiles as a profiles file.
func Marshal(profiles ...Profile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(File{Profiles: profiles}); err != nil {
		return nil, fmt.Errorf("encode profiles: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode profiles: %w", err)
	}
	return buf.Bytes(), nil
}
