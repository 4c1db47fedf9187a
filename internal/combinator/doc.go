// Package combinator is a small string parser-combinator kit.
//
// Parsers return trace.Result values so they can be wrapped by trace.Wrap and
// trace.Silence without adapters. Errors are *Error values that collect
// breadcrumbs through trace.ContextAdder.
package combinator
