// Package sdk provides the ToolForge SDK for defining, testing, and
// distributing AI tools.
//
// The SDK covers the full pre-runtime lifecycle of a tool: declaring its
// input/output contract, building a validated definition, exercising it
// against a live executor, publishing it to a marketplace, and scaffolding
// new tool projects. Actually invoking a tool's handler in production is
// the host runtime's job, not this SDK's.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Parameters: typed, named value contracts (package schema)
//   - Definitions: finalized tool records produced by a builder (package tool)
//   - Testing: running cases against an executor and comparing outcomes (package tester)
//   - Marketplace: publish, search, install, and review operations (package marketplace)
//   - Scaffolding: generated starter source for new tools (package scaffold)
//   - Manifests: tool.yaml files parsed into definitions (package manifest)
//
// # Getting Started
//
// Create an SDK instance, define a tool, and publish it:
//
//	import "github.com/toolforge-ai/sdk"
//
//	kit, err := sdk.New(sdk.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer kit.Close()
//
//	def, err := kit.NewBuilder().
//		Name("web-scraper").
//		Description("Scrapes structured data from web pages").
//		Category("scraping").
//		Author(tool.Author{Name: "Ada"}).
//		Handler("scraper.execute").
//		Input(schema.String("url", "Page URL").AsRequired()).
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := kit.Marketplace().Publish(ctx, def); err != nil {
//		log.Fatal(err)
//	}
//
// # Testing Tools
//
// Verify a definition against its executor before publishing:
//
//	tt, err := kit.NewTester(def, executeFunc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	suite := tt.RunAll(ctx, cases)
//
// # Error Handling
//
// The SDK uses sentinel errors and a structured error type:
//
//	if err != nil {
//		if errors.Is(err, marketplace.ErrToolNotFound) {
//			// Handle missing tool
//		}
//	}
//
// # Observability
//
// The SDK integrates OpenTelemetry for distributed tracing and metrics.
// Pass a tracer with WithTracer and a meter with WithMeter; both default
// to no-ops.
//
// # Thread Safety
//
// All SDK methods and the marketplace service are safe for concurrent
// use. Builders and testers are single-goroutine values.
package sdk
