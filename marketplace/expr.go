package marketplace

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// exprEnv declares the variables a search expression may reference.
// Built once; Compile shares it across calls.
var exprEnv *cel.Env

func init() {
	env, err := cel.NewEnv(
		cel.Variable("id", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("tags", cel.ListType(cel.StringType)),
		cel.Variable("downloads", cel.IntType),
		cel.Variable("rating", cel.DoubleType),
		cel.Variable("verified", cel.BoolType),
	)
	if err != nil {
		panic(fmt.Sprintf("marketplace: invalid CEL environment: %v", err))
	}
	exprEnv = env
}

// toolPredicate evaluates a compiled search expression against one tool.
type toolPredicate func(*Tool) (bool, error)

// compileExpr compiles a CEL search expression into a predicate over
// marketplace tools. The expression must evaluate to a boolean.
//
// Example expressions:
//
//	downloads > 100 && rating >= 4.0
//	category == "web" && "scraping" in tags
//	verified || name.startsWith("official-")
func compileExpr(expr string) (toolPredicate, error) {
	ast, issues := exprEnv.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid search expression: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("search expression must evaluate to bool, got %s", ast.OutputType())
	}

	prg, err := exprEnv.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to plan search expression: %w", err)
	}

	return func(t *Tool) (bool, error) {
		out, _, err := prg.Eval(map[string]any{
			"id":        t.Definition.ID,
			"name":      t.Definition.Name,
			"category":  t.Definition.Category,
			"tags":      t.Definition.Tags,
			"downloads": int64(t.Downloads),
			"rating":    t.Rating,
			"verified":  t.Verified,
		})
		if err != nil {
			return false, fmt.Errorf("search expression evaluation failed: %w", err)
		}
		match, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("search expression produced %T, want bool", out.Value())
		}
		return match, nil
	}, nil
}
