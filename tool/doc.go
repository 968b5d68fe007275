// Package tool defines the declarative record describing one callable
// tool and the builder used to construct it.
//
// A Definition carries a tool's identity, its ordered input and output
// parameter contracts, its authentication requirement, an opaque handler
// reference resolved by the host runtime, a timeout budget, and
// marketplace metadata. Definitions are frozen at construction: the
// Builder is the sole sanctioned construction path, and Build is its
// single validation gate.
//
// # Building a definition
//
//	def, err := tool.NewBuilder().
//		Name("web-fetch").
//		Description("Fetches a web page and extracts text").
//		Category("web").
//		Author(tool.Author{Name: "Data Team"}).
//		Input(schema.String("url", "page to fetch").AsRequired()).
//		Output(schema.String("text", "extracted text")).
//		Handler("fetchers.web_fetch").
//		Timeout(10 * time.Second).
//		Tag("web", "scraping").
//		Public().
//		Build()
//
// Build fails with an error naming the first missing field when name,
// description, category, author, or handler is absent. It does not
// inspect parameter internals; input validation happens when the tester
// checks a concrete input record against the definition.
//
// The handler reference is never resolved by this SDK. How a production
// runtime maps it to a live function, and how credentials for the
// declared AuthType are injected at call time, are host concerns.
package tool
