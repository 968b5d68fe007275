// Package manifest provides loading and parsing of tool.yaml manifest files.
// A manifest is the declarative on-disk form of a tool definition; parsing
// one drives the same builder and validation gate used when defining tools
// in code.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/toolforge-ai/sdk/schema"
	"github.com/toolforge-ai/sdk/tool"
)

// Manifest represents a tool.yaml manifest file.
type Manifest struct {
	// Identity
	ID          string `yaml:"id,omitempty"`
	Name        string `yaml:"name"`
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`

	Author tool.Author `yaml:"author"`

	// Parameter contracts
	Inputs  []ParamConfig `yaml:"inputs,omitempty"`
	Outputs []ParamConfig `yaml:"outputs,omitempty"`

	// Authentication
	Auth *AuthConfig `yaml:"auth,omitempty"`

	// Execution
	Runtime string `yaml:"runtime,omitempty"`
	Handler string `yaml:"handler"`
	Timeout string `yaml:"timeout,omitempty"` // Go duration string (e.g. "45s", "2m")

	// Marketplace metadata
	Tags          []string       `yaml:"tags,omitempty"`
	Documentation string         `yaml:"documentation,omitempty"`
	Examples      []tool.Example `yaml:"examples,omitempty"`
	Public        bool           `yaml:"public,omitempty"`
	Pricing       *tool.Pricing  `yaml:"pricing,omitempty"`
}

// ParamConfig describes one input or output parameter in a manifest.
type ParamConfig struct {
	Name        string        `yaml:"name"`
	Kind        string        `yaml:"kind"`
	Description string        `yaml:"description,omitempty"`
	Required    bool          `yaml:"required,omitempty"`
	Default     any           `yaml:"default,omitempty"`
	Enum        []any         `yaml:"enum,omitempty"`
	Params      []ParamConfig `yaml:"params,omitempty"` // nested object parameters
}

// AuthConfig declares the authentication requirement for a tool.
type AuthConfig struct {
	Type   string         `yaml:"type"`
	Config map[string]any `yaml:"config,omitempty"`
}

// Definition converts the manifest into a finalized tool definition by
// driving the builder. Required-field validation happens in the builder;
// kind and timeout strings are checked here because they only exist in
// the YAML form.
func (m *Manifest) Definition() (*tool.Definition, error) {
	b := tool.NewBuilder().
		Name(m.Name).
		Description(m.Description).
		Category(m.Category).
		Author(m.Author).
		Handler(m.Handler)

	if m.ID != "" {
		b.ID(m.ID)
	}
	if m.Version != "" {
		b.Version(m.Version)
	}
	if m.Runtime != "" {
		b.Runtime(m.Runtime)
	}
	if m.Timeout != "" {
		d, err := time.ParseDuration(m.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", m.Timeout, err)
		}
		b.Timeout(d)
	}

	for _, pc := range m.Inputs {
		p, err := pc.param()
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", pc.Name, err)
		}
		b.Input(p)
	}
	for _, pc := range m.Outputs {
		p, err := pc.param()
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", pc.Name, err)
		}
		b.Output(p)
	}

	if m.Auth != nil {
		t := tool.AuthType(m.Auth.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("invalid auth type %q", m.Auth.Type)
		}
		b.Auth(t, m.Auth.Config)
	}

	if len(m.Tags) > 0 {
		b.Tag(m.Tags...)
	}
	if m.Documentation != "" {
		b.Documentation(m.Documentation)
	}
	for _, ex := range m.Examples {
		b.Example(ex)
	}
	if m.Public {
		b.Public()
	}
	if m.Pricing != nil {
		b.Pricing(*m.Pricing)
	}

	return b.Build()
}

func (pc ParamConfig) param() (schema.Param, error) {
	kind := schema.Kind(pc.Kind)
	if !kind.Valid() {
		return schema.Param{}, fmt.Errorf("invalid kind %q", pc.Kind)
	}

	p := schema.Param{
		Name:        pc.Name,
		Kind:        kind,
		Description: pc.Description,
		Required:    pc.Required,
		Default:     pc.Default,
		Enum:        pc.Enum,
	}
	for _, nc := range pc.Params {
		n, err := nc.param()
		if err != nil {
			return schema.Param{}, err
		}
		p.Nested = append(p.Nested, n)
	}
	return p, nil
}

// Parse parses manifest YAML from a byte slice.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Load reads and parses a tool.yaml file from the given path.
// If the path is a directory, it looks for tool.yaml or tool.yml in that
// directory.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	manifestPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "tool.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			manifestPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "tool.yml")
			if _, err := os.Stat(ymlPath); err != nil {
				return nil, fmt.Errorf("no tool.yaml or tool.yml found in %s", path)
			}
			manifestPath = ymlPath
		}
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return Parse(data)
}

// Find searches for a tool.yaml starting from the given directory and
// walking up to parent directories until found or the filesystem root
// is reached. Returns the path of the manifest file.
func Find(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		for _, name := range []string{"tool.yaml", "tool.yml"} {
			path := filepath.Join(absDir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", fmt.Errorf("no tool.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

// LoadDefinition loads a manifest from path and converts it into a
// finalized tool definition in one step.
func LoadDefinition(path string) (*tool.Definition, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return m.Definition()
}
