package tester

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/toolforge-ai/sdk/schema"
	"github.com/toolforge-ai/sdk/tool"
)

// timeoutMessage is the fixed error recorded when the timer wins the
// execution race. It is distinct from any executor-produced error.
const timeoutMessage = "Execution timed out"

// ExecuteFunc is the executor a host supplies for the tool under test:
// an arbitrary input record to eventual output or failure. The tester
// places no constraint on what an executor does internally.
type ExecuteFunc func(ctx context.Context, input map[string]any) (map[string]any, error)

// Tester verifies one tool definition against one concrete executor.
// It validates candidate inputs before invocation, races the executor
// against the resolved timeout, and compares outcomes against
// expectations. Executor failures become data in the result rather than
// propagated errors, so a batch always runs to completion.
type Tester struct {
	def    *tool.Definition
	exec   ExecuteFunc
	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures a Tester.
type Option func(*Tester)

// WithLogger sets a custom logger. If not provided, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tester) {
		t.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer. When configured, each case
// runs inside a span carrying the case name, outcome, and duration.
func WithTracer(tracer trace.Tracer) Option {
	return func(t *Tester) {
		t.tracer = tracer
	}
}

// New creates a Tester bound to exactly one definition and one executor.
func New(def *tool.Definition, exec ExecuteFunc, opts ...Option) (*Tester, error) {
	if def == nil {
		return nil, errors.New("tool definition is required")
	}
	if exec == nil {
		return nil, errors.New("executor is required")
	}

	t := &Tester{
		def:    def,
		exec:   exec,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// RunTest executes one case. The input is validated against the bound
// definition's input parameters first; on failure the executor is never
// invoked and the validation message becomes the result's error. On
// success the executor runs under a deadline context, racing the
// resolved timeout. A timer win records the fixed timeout message; the
// cancellation signal is propagated to the executor through its context,
// though an executor that ignores it may still finish its side effects
// after the verdict is recorded.
func (t *Tester) RunTest(ctx context.Context, tc TestCase) TestResult {
	start := time.Now()

	var span trace.Span
	if t.tracer != nil {
		ctx, span = t.tracer.Start(ctx, "tester.run_test",
			trace.WithAttributes(
				attribute.String("tool.id", t.def.ID),
				attribute.String("test.name", tc.Name),
			))
		defer span.End()
	}

	result := t.runTest(ctx, tc, start)

	if span != nil {
		span.SetAttributes(
			attribute.Bool("test.passed", result.Passed),
			attribute.Float64("test.duration_ms", float64(result.Duration.Milliseconds())),
		)
	}
	t.logger.Debug("test case finished",
		"tool", t.def.Name,
		"case", tc.Name,
		"passed", result.Passed,
		"duration", result.Duration)

	return result
}

func (t *Tester) runTest(ctx context.Context, tc TestCase, start time.Time) TestResult {
	result := TestResult{
		Name:     tc.Name,
		Expected: tc.ExpectedOutput,
	}

	// Validate before invoking; a violation never reaches the executor.
	if err := schema.ValidateInput(t.def.Inputs, tc.Input); err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		return result
	}

	timeout := t.def.EffectiveTimeout(tc.Timeout)
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		output map[string]any
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		out, err := t.exec(execCtx, tc.Input)
		done <- outcome{out, err}
	}()

	select {
	case <-execCtx.Done():
		result.Error = timeoutMessage
		result.Duration = time.Since(start)
		return result
	case o := <-done:
		result.Duration = time.Since(start)

		if o.err != nil {
			result.Error = o.err.Error()
			result.Passed = tc.ExpectedError != "" && strings.Contains(o.err.Error(), tc.ExpectedError)
			return result
		}

		result.Output = o.output
		switch {
		case tc.ExpectedOutput != nil:
			result.Passed = deepEqual(o.output, tc.ExpectedOutput)
		case tc.ExpectedError != "":
			// An error was expected but none occurred.
			result.Error = "expected error but execution succeeded"
		default:
			result.Passed = true
		}
		return result
	}
}

// RunAll executes cases strictly in sequence, one full RunTest cycle
// (including its timeout race) before the next, and aggregates the
// outcomes. The results list preserves the input order.
func (t *Tester) RunAll(ctx context.Context, cases []TestCase) SuiteResult {
	suite := SuiteResult{
		Results: make([]TestResult, 0, len(cases)),
	}

	start := time.Now()
	for _, tc := range cases {
		r := t.RunTest(ctx, tc)
		suite.Results = append(suite.Results, r)
		if r.Passed {
			suite.Passed++
		} else {
			suite.Failed++
		}
	}
	suite.Duration = time.Since(start)

	t.logger.Info("test suite finished",
		"tool", t.def.Name,
		"passed", suite.Passed,
		"failed", suite.Failed,
		"duration", suite.Duration)

	return suite
}

// RunExamples runs the bound definition's worked examples as a self-test.
// Each example becomes one case named after the example, carrying its
// input and expected output; examples cannot expect errors.
func (t *Tester) RunExamples(ctx context.Context) SuiteResult {
	cases := make([]TestCase, 0, len(t.def.Examples))
	for _, ex := range t.def.Examples {
		cases = append(cases, TestCase{
			Name:           ex.Name,
			Input:          ex.Input,
			ExpectedOutput: ex.ExpectedOutput,
		})
	}
	return t.RunAll(ctx, cases)
}

// deepEqual compares two output records structurally through canonical
// JSON serialization, so that equivalent values of different Go numeric
// types compare equal.
func deepEqual(a, b map[string]any) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}
