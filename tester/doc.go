// Package tester verifies a tool definition against a concrete executor
// supplied by the host.
//
// A Tester is bound to exactly one definition and one ExecuteFunc. For
// each test case it validates the candidate input against the
// definition's input parameters, invokes the executor under a timeout,
// and compares the outcome against the case's expectation:
//
//   - validation failure: the executor is never invoked; the validation
//     message becomes the result's error
//   - timeout: the result fails with the fixed message "Execution timed
//     out", distinct from any executor-produced error
//   - completion with an expected output: pass iff the actual output is
//     structurally equal (canonical JSON comparison)
//   - completion when an error was expected: automatic failure
//   - executor error: pass iff the expected error substring appears in
//     the error message
//
// Executor failures and timeouts are captured into results, never
// propagated as Go errors, so a large batch runs to completion even when
// individual cases fail. There is no retry logic.
//
//	tester, err := tester.New(def, func(ctx context.Context, input map[string]any) (map[string]any, error) {
//		return map[string]any{"echo": input["message"]}, nil
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	suite := tester.RunAll(ctx, []tester.TestCase{
//		{Name: "roundtrip", Input: map[string]any{"message": "hi"},
//			ExpectedOutput: map[string]any{"echo": "hi"}},
//	})
//	fmt.Printf("%d passed, %d failed\n", suite.Passed, suite.Failed)
//
// RunExamples turns the definition's worked examples into a self-test
// suite, giving authors confidence before publishing to a marketplace.
package tester
