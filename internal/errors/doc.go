// Package errors provides structured, actionable error messages for ember.
//
// Every error carries a registered code (e.g. "E003") that maps to a short
// message, a longer explanation and a documentation link. Errors raised
// while building a node tree, loading configuration, exporting snapshots or
// serving previews are converted into an *EmberError before they reach the
// terminal.
//
// # Error Categories
//
//   - build: invalid input to a tree construction primitive
//   - runtime: failures inside effects after the tree is mounted
//   - config: unreadable or invalid configuration files
//   - cli: command line misuse
//   - export: snapshot sinks
//   - preview: the live preview server
//
// # Usage
//
//	err := errors.New("E020").
//	    WithLocation("ember.toml", 4, 9).
//	    WithSuggestion("Quote string values in TOML")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E020: Configuration file is malformed
//	//
//	//   ember.toml:4:9
//	//
//	//      3 │ [preview]
//	//   →  4 │ addr = :7070
//	//        │         ^
//	//
//	//   Hint: Quote string values in TOML
//	//
//	//   Learn more: https://ember.dev/docs/errors/E020
package errors
