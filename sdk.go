package sdk

import (
	"log/slog"
	"os"

	"github.com/toolforge-ai/sdk/manifest"
	"github.com/toolforge-ai/sdk/marketplace"
	"github.com/toolforge-ai/sdk/scaffold"
	"github.com/toolforge-ai/sdk/tester"
	"github.com/toolforge-ai/sdk/tool"
)

// SDK is the top-level entry point tying the tool lifecycle together:
// building definitions, testing them against executors, and publishing
// them to a marketplace backed by the configured store.
type SDK struct {
	logger      *slog.Logger
	cfg         config
	marketplace *marketplace.Marketplace
}

// New creates an SDK instance.
//
// Example:
//
//	kit, err := sdk.New(
//	    sdk.WithLogger(logger),
//	    sdk.WithStore(store),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer kit.Close()
func New(opts ...Option) (*SDK, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if cfg.store == nil {
		cfg.store = marketplace.NewMemoryStore()
	}

	mktOpts := []marketplace.Option{marketplace.WithLogger(cfg.logger)}
	if cfg.tracer != nil {
		mktOpts = append(mktOpts, marketplace.WithTracer(cfg.tracer))
	}
	if cfg.meter != nil {
		mktOpts = append(mktOpts, marketplace.WithMeter(cfg.meter))
	}

	return &SDK{
		logger:      cfg.logger,
		cfg:         cfg,
		marketplace: marketplace.New(cfg.store, mktOpts...),
	}, nil
}

// Marketplace returns the marketplace service backed by the configured
// store.
func (s *SDK) Marketplace() *marketplace.Marketplace {
	return s.marketplace
}

// NewBuilder returns a definition builder seeded with defaults.
func (s *SDK) NewBuilder() *tool.Builder {
	return tool.NewBuilder()
}

// NewTester creates a tester binding the definition to its executor,
// carrying the SDK's logger and tracer.
func (s *SDK) NewTester(def *tool.Definition, exec tester.ExecuteFunc) (*tester.Tester, error) {
	opts := []tester.Option{tester.WithLogger(s.logger)}
	if s.cfg.tracer != nil {
		opts = append(opts, tester.WithTracer(s.cfg.tracer))
	}

	t, err := tester.New(def, exec, opts...)
	if err != nil {
		return nil, NewValidationError("SDK.NewTester", err)
	}
	return t, nil
}

// Scaffold generates starter source text for a new tool.
func (s *SDK) Scaffold(req scaffold.Request) scaffold.Scaffold {
	return scaffold.Generate(req)
}

// LoadManifest reads a tool.yaml manifest from path and converts it into
// a finalized definition.
func (s *SDK) LoadManifest(path string) (*tool.Definition, error) {
	def, err := manifest.LoadDefinition(path)
	if err != nil {
		return nil, NewConfigurationError("SDK.LoadManifest", err).
			WithContext(map[string]any{"path": path})
	}
	return def, nil
}

// Close releases the marketplace store. Safe to call on an SDK backed by
// the in-memory store.
func (s *SDK) Close() error {
	return s.cfg.store.Close()
}
