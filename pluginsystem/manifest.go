package pluginsystem

import (
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ManifestFileName marks a directory as a plug-in package and names its
// entry library.
const ManifestFileName = "plugin.yaml"

// apiVersionConstraint is the range of plug-in API versions this
// middleware can host.
const apiVersionConstraint = ">= 1.0.0, < 2.0.0"

// manifestSchema validates the structure of a plug-in manifest before
// it is decoded.
const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["entry"],
  "properties": {
    "identifier": {"type": "string", "minLength": 1},
    "entry": {"type": "string", "minLength": 1},
    "apiVersion": {"type": "string", "minLength": 1}
  },
  "additionalProperties": false
}`

var compiledManifestSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("manifest.json", strings.NewReader(manifestSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("manifest.json")
}()

// Manifest describes a package-directory plug-in.
type Manifest struct {
	// Identifier optionally declares the plug-in identifier. When set,
	// it must match what the entry library reports.
	Identifier string `yaml:"identifier"`

	// Entry is the shared-library filename, relative to the package
	// directory.
	Entry string `yaml:"entry"`

	// APIVersion is the plug-in API version the package was built
	// against. Empty means 1.0.0.
	APIVersion string `yaml:"apiVersion"`
}

// LoadManifest reads, validates and decodes a plug-in manifest.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode manifest YAML: %w", err)
	}
	if err := compiledManifestSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("manifest failed schema validation: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest YAML: %w", err)
	}
	if err := checkAPIVersion(manifest.APIVersion); err != nil {
		return nil, err
	}
	return &manifest, nil
}

func checkAPIVersion(declared string) error {
	if declared == "" {
		return nil
	}
	version, err := semver.NewVersion(declared)
	if err != nil {
		return fmt.Errorf("invalid apiVersion '%s': %w", declared, err)
	}
	constraint, err := semver.NewConstraint(apiVersionConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf(
			"plug-in API version %s is not compatible with the supported range %s",
			declared, apiVersionConstraint)
	}
	return nil
}
