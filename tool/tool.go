package tool

import (
	"time"

	"github.com/toolforge-ai/sdk/schema"
)

// DefaultTimeout is the execution budget applied when a definition does
// not declare its own.
const DefaultTimeout = 30 * time.Second

// AuthType identifies how a tool authenticates against its backing service.
type AuthType string

// Authentication modes supported by tool definitions.
const (
	AuthNone   AuthType = "none"
	AuthAPIKey AuthType = "api_key"
	AuthOAuth2 AuthType = "oauth2"
	AuthBasic  AuthType = "basic"
	AuthCustom AuthType = "custom"
)

// Valid reports whether t is one of the supported authentication modes.
func (t AuthType) Valid() bool {
	switch t {
	case AuthNone, AuthAPIKey, AuthOAuth2, AuthBasic, AuthCustom:
		return true
	}
	return false
}

// CredentialFields returns the credential keys a host must supply at call
// time for the given authentication mode. Custom modes declare their own
// fields through the definition's AuthConfig.
func CredentialFields(t AuthType) []string {
	switch t {
	case AuthAPIKey:
		return []string{"api_key"}
	case AuthBasic:
		return []string{"username", "password"}
	case AuthOAuth2:
		return []string{"client_id", "client_secret"}
	default:
		return nil
	}
}

// Author identifies who published a tool.
type Author struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Example is a worked input/output pair carried by a definition.
// Examples double as a self-test suite: the tester can run each example
// against a live executor and compare outputs.
type Example struct {
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	Input          map[string]any `json:"input" yaml:"input"`
	ExpectedOutput map[string]any `json:"expected_output,omitempty" yaml:"expected_output,omitempty"`
}

// Pricing describes optional marketplace pricing for a public tool.
type Pricing struct {
	Model    string  `json:"model" yaml:"model"` // "free", "per_call", "subscription"
	Amount   float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
	Currency string  `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Definition is the finalized, declarative record describing one callable
// tool: its identity, input/output contract, authentication requirement,
// execution runtime, and marketplace metadata.
//
// A Definition is produced by Builder.Build and never mutated afterwards.
// Republishing a changed tool means building a new Definition with a
// bumped version.
type Definition struct {
	// ID uniquely identifies the tool. Generated when not supplied.
	ID string `json:"id" yaml:"id"`

	// Name is the human-facing tool name.
	Name string `json:"name" yaml:"name"`

	// Description explains what the tool does.
	Description string `json:"description" yaml:"description"`

	// Version is the semantic version of the definition.
	Version string `json:"version" yaml:"version"`

	// Category groups related tools for discovery.
	Category string `json:"category" yaml:"category"`

	// Author identifies the publisher.
	Author Author `json:"author" yaml:"author"`

	// Inputs and Outputs are the ordered parameter contracts.
	// Names are unique within each list.
	Inputs  []schema.Param `json:"inputs" yaml:"inputs"`
	Outputs []schema.Param `json:"outputs" yaml:"outputs"`

	// AuthType declares the authentication requirement; AuthConfig carries
	// mode-specific settings (endpoints, scopes, header names).
	AuthType   AuthType       `json:"auth_type" yaml:"auth_type"`
	AuthConfig map[string]any `json:"auth_config,omitempty" yaml:"auth_config,omitempty"`

	// Runtime tags the execution environment the handler expects.
	Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty"`

	// Handler is an opaque reference (function name or URL) resolved by
	// the host runtime, never by this SDK.
	Handler string `json:"handler" yaml:"handler"`

	// Timeout is the execution budget for one invocation.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Tags are free-form labels for search and categorization.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Documentation is free-form usage text.
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`

	// Examples are worked input/output pairs.
	Examples []Example `json:"examples,omitempty" yaml:"examples,omitempty"`

	// IsPublic marks the definition as publishable to a marketplace.
	IsPublic bool `json:"is_public" yaml:"is_public"`

	// Pricing is optional marketplace pricing.
	Pricing *Pricing `json:"pricing,omitempty" yaml:"pricing,omitempty"`
}

// EffectiveTimeout resolves the execution budget for one invocation.
// Precedence: the requested override, then the definition's timeout, then
// DefaultTimeout.
func (d *Definition) EffectiveTimeout(requested time.Duration) time.Duration {
	if requested > 0 {
		return requested
	}
	if d.Timeout > 0 {
		return d.Timeout
	}
	return DefaultTimeout
}

// clone returns a deep copy of the definition so that a finalized value
// does not share list storage with the builder that produced it.
func (d *Definition) clone() *Definition {
	out := *d
	out.Inputs = append([]schema.Param(nil), d.Inputs...)
	out.Outputs = append([]schema.Param(nil), d.Outputs...)
	out.Tags = append([]string(nil), d.Tags...)
	out.Examples = append([]Example(nil), d.Examples...)
	if d.AuthConfig != nil {
		cfg := make(map[string]any, len(d.AuthConfig))
		for k, v := range d.AuthConfig {
			cfg[k] = v
		}
		out.AuthConfig = cfg
	}
	if d.Pricing != nil {
		p := *d.Pricing
		out.Pricing = &p
	}
	return &out
}
