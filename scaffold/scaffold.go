// Package scaffold emits human-editable source text bootstrapping a new
// tool: a definition stub, an implementation stub, a test stub, and a
// readme. Generation is pure template substitution over the supplied
// name, description, category, and parameter lists; it touches no other
// component, performs no validation, and always succeeds.
package scaffold

import (
	"strings"
	"text/template"
	"unicode"

	"github.com/toolforge-ai/sdk/schema"
)

// Request carries everything scaffold generation derives from.
type Request struct {
	Name        string
	Description string
	Category    string
	Inputs      []schema.Param
	Outputs     []schema.Param
}

// Scaffold holds the four generated text blocks. The text is a starting
// point for a human to hand-edit; nothing in this SDK parses it back.
type Scaffold struct {
	Definition     string
	Implementation string
	Tests          string
	Readme         string
}

// Generate produces a scaffold for a new tool. The emitted symbol and
// package names derive from Name: lowercased with every
// non-alphanumeric rune stripped.
func Generate(req Request) Scaffold {
	data := templateData{
		Name:        req.Name,
		Ident:       Identifier(req.Name),
		Description: req.Description,
		Category:    req.Category,
		Inputs:      req.Inputs,
		Outputs:     req.Outputs,
	}

	return Scaffold{
		Definition:     render(definitionTmpl, data),
		Implementation: render(implementationTmpl, data),
		Tests:          render(testsTmpl, data),
		Readme:         render(readmeTmpl, data),
	}
}

// Identifier derives a symbol-safe name: lowercase, non-alphanumeric
// runes stripped.
func Identifier(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type templateData struct {
	Name        string
	Ident       string
	Description string
	Category    string
	Inputs      []schema.Param
	Outputs     []schema.Param
}

func render(t *template.Template, data templateData) string {
	var b strings.Builder
	// Templates are static and the data is plain values; execution
	// cannot fail.
	_ = t.Execute(&b, data)
	return b.String()
}

var funcs = template.FuncMap{
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"constructor": func(p schema.Param) string {
		switch p.Kind {
		case schema.KindNumber:
			return "Number"
		case schema.KindBoolean:
			return "Bool"
		case schema.KindArray:
			return "Array"
		case schema.KindObject:
			return "Object"
		case schema.KindFile:
			return "File"
		default:
			return "String"
		}
	},
}

var definitionTmpl = template.Must(template.New("definition").Funcs(funcs).Parse(
	`// Package {{.Ident}} defines the {{.Name}} tool.
package {{.Ident}}

import (
	"github.com/toolforge-ai/sdk/schema"
	"github.com/toolforge-ai/sdk/tool"
)

// Definition builds the {{.Name}} tool definition.
func Definition() (*tool.Definition, error) {
	return tool.NewBuilder().
		Name("{{.Name}}").
		Description("{{.Description}}").
		Category("{{.Category}}").
		Author(tool.Author{Name: "TODO"}).
		Handler("{{.Ident}}.execute").
{{- range .Inputs}}
		Input(schema.{{constructor .}}("{{.Name}}", "{{.Description}}"){{if .Required}}.AsRequired(){{end}}).
{{- end}}
{{- range .Outputs}}
		Output(schema.{{constructor .}}("{{.Name}}", "{{.Description}}")).
{{- end}}
		Build()
}
`))

var implementationTmpl = template.Must(template.New("implementation").Funcs(funcs).Parse(
	`package {{.Ident}}

import "context"

// Execute implements the {{.Name}} tool.
// {{.Description}}
func Execute(ctx context.Context, input map[string]any) (map[string]any, error) {
{{- range .Inputs}}
	// TODO: read input["{{.Name}}"] ({{.Kind}})
{{- end}}

	output := map[string]any{
{{- range .Outputs}}
		"{{.Name}}": nil, // TODO: {{.Kind}}
{{- end}}
	}
	return output, nil
}
`))

var testsTmpl = template.Must(template.New("tests").Funcs(funcs).Parse(
	`package {{.Ident}}

import (
	"context"
	"testing"

	"github.com/toolforge-ai/sdk/tester"
)

func Test{{title .Ident}}(t *testing.T) {
	def, err := Definition()
	if err != nil {
		t.Fatalf("Definition() failed: %v", err)
	}

	tt, err := tester.New(def, Execute)
	if err != nil {
		t.Fatalf("tester.New() failed: %v", err)
	}

	result := tt.RunTest(context.Background(), tester.TestCase{
		Name: "basic",
		Input: map[string]any{
{{- range .Inputs}}
			"{{.Name}}": nil, // TODO: {{.Kind}}
{{- end}}
		},
	})
	if !result.Passed {
		t.Errorf("test failed: %s", result.Error)
	}
}
`))

var readmeTmpl = template.Must(template.New("readme").Funcs(funcs).Parse(
	`# {{.Name}}

{{.Description}}

Category: {{.Category}}

## Inputs

{{if .Inputs}}| Name | Kind | Required | Description |
| --- | --- | --- | --- |
{{range .Inputs}}| {{.Name}} | {{.Kind}} | {{if .Required}}yes{{else}}no{{end}} | {{.Description}} |
{{end}}{{else}}This tool takes no inputs.
{{end}}
## Outputs

{{if .Outputs}}| Name | Kind | Description |
| --- | --- | --- |
{{range .Outputs}}| {{.Name}} | {{.Kind}} | {{.Description}} |
{{end}}{{else}}This tool produces no declared outputs.
{{end}}
## Usage

Build the definition with ` + "`Definition()`" + `, verify it with the
tester against ` + "`Execute`" + `, then publish it to a marketplace.
`))
