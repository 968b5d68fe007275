package sdk

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that all sentinel errors are defined correctly.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "ErrInvalidDefinition",
			err:  ErrInvalidDefinition,
			want: "invalid tool definition",
		},
		{
			name: "ErrInvalidManifest",
			err:  ErrInvalidManifest,
			want: "invalid tool manifest",
		},
		{
			name: "ErrStoreUnavailable",
			err:  ErrStoreUnavailable,
			want: "marketplace store unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("sentinel error %s is nil", tt.name)
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSDKErrorError verifies the Error() method formatting.
func TestSDKErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *SDKError
		want string
	}{
		{
			name: "basic error",
			err: &SDKError{
				Op:   "SDK.LoadManifest",
				Kind: KindConfiguration,
				Err:  ErrInvalidManifest,
			},
			want: "sdk: SDK.LoadManifest (configuration): invalid tool manifest",
		},
		{
			name: "no underlying error",
			err: &SDKError{
				Op:   "SDK.NewTester",
				Kind: KindValidation,
			},
			want: "sdk: SDK.NewTester: validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSDKErrorContextFormatting(t *testing.T) {
	err := NewConfigurationError("SDK.LoadManifest", ErrInvalidManifest).
		WithContext(map[string]any{"path": "/tmp/tool.yaml"})

	got := err.Error()
	if !strings.Contains(got, "context:") {
		t.Errorf("Error() = %q, want context section", got)
	}
	if !strings.Contains(got, "/tmp/tool.yaml") {
		t.Errorf("Error() = %q, want path in context", got)
	}
}

func TestSDKErrorUnwrap(t *testing.T) {
	underlying := fmt.Errorf("read failed")
	err := NewInternalError("Store.GetTool", underlying)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is did not match the wrapped error")
	}
	if got := errors.Unwrap(err); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}
}

func TestSDKErrorIsKindMatching(t *testing.T) {
	err := NewValidationError("SDK.NewTester", errors.New("definition is required"))

	if !errors.Is(err, &SDKError{Kind: KindValidation}) {
		t.Error("expected match on kind alone")
	}
	if !errors.Is(err, &SDKError{Op: "SDK.NewTester", Kind: KindValidation}) {
		t.Error("expected match on op and kind")
	}
	if errors.Is(err, &SDKError{Kind: KindTimeout}) {
		t.Error("unexpected match on different kind")
	}
	if errors.Is(err, &SDKError{Op: "SDK.LoadManifest", Kind: KindValidation}) {
		t.Error("unexpected match on different op")
	}
}

func TestSDKErrorWithContextCopies(t *testing.T) {
	base := NewNotFoundError("Marketplace.Install", errors.New("tool not found"))
	withCtx := base.WithContext(map[string]any{"tool_id": "abc"})

	if base.Context != nil {
		t.Error("WithContext mutated the original error")
	}
	if withCtx.Context["tool_id"] != "abc" {
		t.Errorf("context not carried: %+v", withCtx.Context)
	}
}

func TestErrorConstructors(t *testing.T) {
	underlying := errors.New("boom")
	tests := []struct {
		name string
		err  *SDKError
		kind string
	}{
		{"NewNotFoundError", NewNotFoundError("op", underlying), KindNotFound},
		{"NewValidationError", NewValidationError("op", underlying), KindValidation},
		{"NewExecutionError", NewExecutionError("op", underlying), KindExecution},
		{"NewConfigurationError", NewConfigurationError("op", underlying), KindConfiguration},
		{"NewTimeoutError", NewTimeoutError("op", underlying), KindTimeout},
		{"NewInternalError", NewInternalError("op", underlying), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", tt.err.Kind, tt.kind)
			}
			if tt.err.Err != underlying {
				t.Error("underlying error not carried")
			}
		})
	}
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseWithLog(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	CloseWithLog(nil, logger, "nil resource")
	if buf.Len() != 0 {
		t.Errorf("unexpected log output for nil closer: %s", buf.String())
	}

	CloseWithLog(failingCloser{}, logger, "clean resource")
	if buf.Len() != 0 {
		t.Errorf("unexpected log output for clean close: %s", buf.String())
	}

	CloseWithLog(failingCloser{err: errors.New("close failed")}, logger, "dirty resource")
	out := buf.String()
	if !strings.Contains(out, "failed to close resource") {
		t.Errorf("missing warning in log output: %s", out)
	}
	if !strings.Contains(out, "dirty resource") {
		t.Errorf("missing resource name in log output: %s", out)
	}
}
