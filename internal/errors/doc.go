// Package errors provides coded, printable errors for the quasar runtime
// and CLI.
//
// Every failure the runtime can report has a code (e.g. "Q001") mapped to a
// category, a short message and a longer explanation. Runtime error types in
// pkg/quasar expose their code through a Code() method; FromError turns any
// such error into a QuasarError for display.
//
// # Categories
//
//   - setup: bind-time failures such as a selector matching nothing
//   - runtime: state access failures during handlers and renders
//   - invariant: internal consistency violations, always fatal
//   - config: configuration file problems
//   - cli: command-line usage problems
//
// # Usage
//
//	err := errors.New("Q001").
//	    WithDetail(`selector "#counter" matched no elements`).
//	    WithSuggestion("Check the host page markup")
//
//	fmt.Print(err.Format())
package errors
