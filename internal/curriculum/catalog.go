package curriculum

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogFile is the on-disk shape of a module catalogue.
type catalogFile struct {
	Modules []Module `yaml:"modules"`
}

// def is the compiled-in registry, built and validated by init().
var def *Registry

func init() {
	r, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("curriculum: embedded catalog: %v", err))
	}
	def = r
}

// Default returns the registry built from the compiled-in catalogue.
func Default() *Registry {
	return def
}

// Parse decodes a YAML catalogue and builds a validated Registry from it.
func Parse(data []byte) (*Registry, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(cf.Modules)
}

// LoadFile reads a YAML catalogue from path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
