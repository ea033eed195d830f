package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed override.schema.json
var overrideSchema string

// Override is a user-supplied document layered over the default catalog
// with Merge. Every table is optional; absent tables leave the base
// catalog untouched.
type Override struct {
	Extensions                map[string][]string `yaml:"extensions" toml:"extensions" json:"extensions"`
	ExtensionsNeedBinaryCheck map[string][]string `yaml:"extensionsNeedBinaryCheck" toml:"extensionsNeedBinaryCheck" json:"extensionsNeedBinaryCheck"`
	Names                     map[string][]string `yaml:"names" toml:"names" json:"names"`
	Interpreters              map[string][]string `yaml:"interpreters" toml:"interpreters" json:"interpreters"`
}

// LoadFile reads an override document from path. The format is chosen by
// extension: .yaml/.yml, .toml, or .json. The document is validated
// against the embedded schema before it is returned; validation failures
// wrap ErrInvalid.
func LoadFile(path string) (*Override, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog override %s: %w", path, err)
	}

	var generic any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
		}
	case ".toml":
		var m map[string]any
		if err := toml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
		}
		generic = m
	case ".json":
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if err := validateOverride(generic); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	// Round-trip through JSON so YAML's map[string]any and TOML's native
	// maps both decode into the same struct shape.
	normalized, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	var o Override
	if err := json.Unmarshal(normalized, &o); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	return &o, nil
}

func validateOverride(doc any) error {
	schema := gojsonschema.NewStringLoader(overrideSchema)
	document := gojsonschema.NewGoLoader(doc)
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return err
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
	}
	return nil
}
