// Package manifest loads and validates the project manifest that binds a
// scored codebase to its license, wallet, and contributor roster.
package manifest

import (
	"embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	yamlv3 "gopkg.in/yaml.v3"
)

//go:embed schema/*.cue
var schemaFS embed.FS

// minLicenseKeyLength is the shortest license key accepted as valid.
const minLicenseKeyLength = 8

// Contributor is one entry in the manifest's contributor roster.
type Contributor struct {
	Name   string `yaml:"name"`
	Wallet string `yaml:"wallet,omitempty"`
}

// Manifest describes the licensed project.
type Manifest struct {
	Project      string        `yaml:"project"`
	LicenseKey   string        `yaml:"licenseKey"`
	Wallet       string        `yaml:"wallet"`
	BaseRate     float64       `yaml:"baseRate,omitempty"`
	Contributors []Contributor `yaml:"contributors,omitempty"`
}

// Valid reports whether the manifest passes the original license checks:
// non-empty project and a license key of at least eight characters.
func (m *Manifest) Valid() bool {
	return m.Project != "" && len(m.LicenseKey) >= minLicenseKeyLength
}

// Info renders a human-readable summary of the manifest.
func (m *Manifest) Info() string {
	status := "Invalid"
	if m.Valid() {
		status = "Valid"
	}
	return fmt.Sprintf("Project: %s\nLicense Key: %s\nValidation Status: %s\n",
		m.Project, m.LicenseKey, status)
}

// Validator validates raw manifest data against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
	loaded bool
}

// NewValidator creates a validator with the embedded schema compiled.
func NewValidator() (*Validator, error) {
	v := &Validator{ctx: cuecontext.New()}

	content, err := schemaFS.ReadFile("schema/manifest.cue")
	if err != nil {
		return nil, fmt.Errorf("could not read embedded manifest schema: %w", err)
	}

	compiled := v.ctx.CompileBytes(content, cue.Filename("manifest.cue"))
	if err := compiled.Err(); err != nil {
		return nil, fmt.Errorf("could not compile manifest schema: %w", err)
	}

	v.schema = compiled.LookupPath(cue.ParsePath("#Manifest"))
	v.loaded = v.schema.Exists()
	return v, nil
}

// Validate checks raw manifest data against the schema. It returns a list of
// human-readable problems; an empty list means the data conforms.
func (v *Validator) Validate(data map[string]any) []string {
	if !v.loaded {
		return nil
	}

	dataValue := v.ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return []string{fmt.Sprintf("could not encode manifest data: %v", err)}
	}

	unified := v.schema.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return []string{fmt.Sprintf("manifest schema validation failed: %v", err)}
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return []string{fmt.Sprintf("manifest schema validation failed: %v", err)}
	}

	return nil
}

// Load reads a manifest file, validates it against the CUE schema, and
// decodes it.
func Load(path string) (*Manifest, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest %s: %w", path, err)
	}
	return Parse(contents)
}

// Parse validates and decodes manifest YAML.
func Parse(contents []byte) (*Manifest, error) {
	var raw map[string]any
	if err := yamlv3.Unmarshal(contents, &raw); err != nil {
		return nil, fmt.Errorf("error parsing manifest YAML: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("manifest is empty")
	}

	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if problems := validator.Validate(raw); len(problems) > 0 {
		return nil, fmt.Errorf("invalid manifest: %s", problems[0])
	}

	var m Manifest
	if err := yamlv3.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("error decoding manifest: %w", err)
	}
	return &m, nil
}
