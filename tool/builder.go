package tool

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/toolforge-ai/sdk/schema"
)

// Builder accumulates Definition fields through chainable calls and
// defers all required-field validation to Build. Calls can be chained in
// any order; list-valued fields (inputs, outputs, tags, examples) append
// rather than replace.
type Builder struct {
	def Definition
}

// NewBuilder creates a Builder seeded with defaults: a generated id,
// version "1.0.0", empty parameter lists, the default timeout,
// authentication mode "none", and private marketplace visibility.
func NewBuilder() *Builder {
	return &Builder{
		def: Definition{
			ID:       uuid.New().String(),
			Version:  "1.0.0",
			Inputs:   []schema.Param{},
			Outputs:  []schema.Param{},
			Tags:     []string{},
			Timeout:  DefaultTimeout,
			AuthType: AuthNone,
			IsPublic: false,
		},
	}
}

// ID overrides the generated tool id.
func (b *Builder) ID(id string) *Builder {
	b.def.ID = id
	return b
}

// Name sets the tool name.
func (b *Builder) Name(name string) *Builder {
	b.def.Name = name
	return b
}

// Description sets the tool description.
func (b *Builder) Description(desc string) *Builder {
	b.def.Description = desc
	return b
}

// Version sets the semantic version.
func (b *Builder) Version(version string) *Builder {
	b.def.Version = version
	return b
}

// Category sets the tool category.
func (b *Builder) Category(category string) *Builder {
	b.def.Category = category
	return b
}

// Author sets the author record.
func (b *Builder) Author(author Author) *Builder {
	b.def.Author = author
	return b
}

// Input appends one input parameter.
func (b *Builder) Input(p schema.Param) *Builder {
	b.def.Inputs = append(b.def.Inputs, p)
	return b
}

// Output appends one output parameter.
func (b *Builder) Output(p schema.Param) *Builder {
	b.def.Outputs = append(b.def.Outputs, p)
	return b
}

// Auth sets the authentication mode and its mode-specific configuration.
func (b *Builder) Auth(t AuthType, config map[string]any) *Builder {
	b.def.AuthType = t
	b.def.AuthConfig = config
	return b
}

// Runtime sets the execution runtime tag.
func (b *Builder) Runtime(runtime string) *Builder {
	b.def.Runtime = runtime
	return b
}

// Handler sets the opaque handler reference.
func (b *Builder) Handler(handler string) *Builder {
	b.def.Handler = handler
	return b
}

// Timeout sets the execution budget for one invocation.
func (b *Builder) Timeout(d time.Duration) *Builder {
	b.def.Timeout = d
	return b
}

// Tag appends one or more tags.
func (b *Builder) Tag(tags ...string) *Builder {
	b.def.Tags = append(b.def.Tags, tags...)
	return b
}

// Documentation sets the free-form documentation text.
func (b *Builder) Documentation(doc string) *Builder {
	b.def.Documentation = doc
	return b
}

// Example appends one worked example.
func (b *Builder) Example(ex Example) *Builder {
	b.def.Examples = append(b.def.Examples, ex)
	return b
}

// Public marks the definition publishable to a marketplace.
func (b *Builder) Public() *Builder {
	b.def.IsPublic = true
	return b
}

// Pricing sets optional marketplace pricing.
func (b *Builder) Pricing(p Pricing) *Builder {
	b.def.Pricing = &p
	return b
}

// Build validates the accumulated fields and returns a finalized
// Definition. It is the single validation gate: missing name,
// description, category, author, or handler fails with an error naming
// the field. Parameter internals are not checked here; that is the
// tester's job against concrete inputs.
//
// Build can be called more than once; each call returns a separately
// valid copy of the accumulated state.
func (b *Builder) Build() (*Definition, error) {
	if b.def.Name == "" {
		return nil, errors.New("tool name is required")
	}
	if b.def.Description == "" {
		return nil, errors.New("tool description is required")
	}
	if b.def.Category == "" {
		return nil, errors.New("tool category is required")
	}
	if b.def.Author.Name == "" {
		return nil, errors.New("tool author is required")
	}
	if b.def.Handler == "" {
		return nil, errors.New("tool handler is required")
	}

	return b.def.clone(), nil
}
