package trace

import (
	"errors"
	"fmt"
)

// Enricher attaches a breadcrumb to an error returned by a wrapped parser.
// It is called only when the wrapper has a context and the result is an error.
type Enricher func(input, location, context string, err error) error

// ContextAdder is implemented by parser errors that record their own breadcrumbs.
type ContextAdder interface {
	AddContext(input, location, context string) error
}

// BreadcrumbError wraps an error with the location and context of the
// wrapped parser it passed through.
type BreadcrumbError struct {
	Location string
	Context  string
	Input    string
	Err      error
}

func (e *BreadcrumbError) Error() string {
	return fmt.Sprintf("%s[%s]: %v", e.Location, e.Context, e.Err)
}

func (e *BreadcrumbError) Unwrap() error { return e.Err }

// Breadcrumbs is the standard Enricher. Errors implementing ContextAdder add
// the crumb themselves; anything else is wrapped in a *BreadcrumbError.
func Breadcrumbs(input, location, context string, err error) error {
	if err == nil {
		return nil
	}
	var adder ContextAdder
	if errors.As(err, &adder) {
		if enriched := adder.AddContext(input, location, context); enriched != nil {
			return enriched
		}
	}
	return &BreadcrumbError{Location: location, Context: context, Input: input, Err: err}
}

// Crumb is one entry of an error's breadcrumb trail.
type Crumb struct {
	Location string
	Context  string
	Input    string
}

// Trail lists the breadcrumbs wrapped around err, outermost first.
func Trail(err error) []Crumb {
	var crumbs []Crumb
	for err != nil {
		if bc, ok := err.(*BreadcrumbError); ok {
			crumbs = append(crumbs, Crumb{Location: bc.Location, Context: bc.Context, Input: bc.Input})
		}
		err = errors.Unwrap(err)
	}
	return crumbs
}

// enrich applies the registry enricher to an error result.
func enrich[O any](r *Registry, input, location, context string, res Result[O]) Result[O] {
	if context == "" || r.enricher == nil || !res.IsErr() || res.Err == nil {
		return res
	}
	res.Err = r.enricher(input, location, context, res.Err)
	return res
}
