package units

import (
	"context"
	_ "embed"
	"errors"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed units.yaml
var embeddedTable []byte

type yamlTable struct {
	Version int `yaml:"version"`
	Units   []struct {
		Code string `yaml:"code"`
		Name string `yaml:"name"`
	} `yaml:"units"`
}

// YAMLSource reads a versioned unit table in YAML.
type YAMLSource struct {
	data []byte
}

// NewYAMLSource wraps raw YAML bytes.
func NewYAMLSource(data []byte) YAMLSource {
	return YAMLSource{data: data}
}

// EmbeddedSource is the table compiled into the binary.
func EmbeddedSource() YAMLSource {
	return YAMLSource{data: embeddedTable}
}

// YAMLFileSource reads the table from path.
func YAMLFileSource(path string) (YAMLSource, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return YAMLSource{}, err
	}
	return YAMLSource{data: b}, nil
}

// LoadUnits implements Source.
func (s YAMLSource) LoadUnits(_ context.Context) ([]Unit, error) {
	return ParseYAML(s.data)
}

// ParseYAML decodes a unit table.
func ParseYAML(b []byte) ([]Unit, error) {
	var t yamlTable
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	if t.Version != 1 {
		return nil, errors.New("units: unsupported version")
	}
	if len(t.Units) == 0 {
		return nil, errors.New("units: empty table")
	}
	out := make([]Unit, 0, len(t.Units))
	for _, u := range t.Units {
		out = append(out, Unit{Code: u.Code, DisplayName: u.Name})
	}
	return out, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry built from the embedded table. It panics if
// the embedded table is invalid.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(context.Background(), EmbeddedSource())
		if err != nil {
			panic("units: embedded table: " + err.Error())
		}
		defaultReg = reg
	})
	return defaultReg
}
