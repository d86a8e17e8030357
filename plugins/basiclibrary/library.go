// Package basiclibrary provides a self-contained example manager backed
// by a YAML asset library. It demonstrates what a manager plug-in looks
// like and backs the end-to-end tests of the middleware; it is not a
// production asset management system.
package basiclibrary

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/foundrytom/openassetio-go/trait"
)

// libraryDocument is the on-disk shape of an asset library.
type libraryDocument struct {
	// Default optionally names the reference handed out as the default
	// entity for any trait set.
	Default string `yaml:"default"`

	// Assets maps entity reference strings to their trait data.
	Assets map[string]assetDocument `yaml:"assets"`
}

type assetDocument struct {
	Traits map[string]map[string]any `yaml:"traits"`
}

// library is the in-memory asset store. Entities registered during a
// session live alongside those loaded from disk; nothing is written
// back.
type library struct {
	defaultRef string
	assets     map[string]*trait.Data
}

func newLibrary() *library {
	return &library{assets: map[string]*trait.Data{}}
}

// loadLibrary reads an asset library document from disk.
func loadLibrary(path string) (*library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset library: %w", err)
	}
	var doc libraryDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode asset library YAML: %w", err)
	}

	lib := newLibrary()
	lib.defaultRef = doc.Default
	for ref, asset := range doc.Assets {
		data := trait.NewData()
		for traitID, properties := range asset.Traits {
			data.AddTrait(traitID)
			for key, value := range properties {
				if err := data.SetTraitProperty(traitID, key, normaliseYAMLValue(value)); err != nil {
					return nil, fmt.Errorf("asset '%s': %w", ref, err)
				}
			}
		}
		lib.assets[ref] = data
	}
	return lib, nil
}

// normaliseYAMLValue widens the integer types the YAML decoder may
// produce to the int64 the trait payload uses.
func normaliseYAMLValue(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	default:
		return value
	}
}

func (l *library) asset(ref string) (*trait.Data, bool) {
	data, ok := l.assets[ref]
	return data, ok
}

func (l *library) store(ref string, data *trait.Data) {
	l.assets[ref] = data.Copy()
}
