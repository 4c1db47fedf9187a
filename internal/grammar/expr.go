package grammar

import (
	c "parsetrace/internal/combinator"
	"parsetrace/internal/trace"
)

// TagExpr is the tag NestedExpression records into.
const TagExpr = "expr_parser"

// NestedExpression parses digits optionally followed by a parenthesized
// nested expression, e.g. 1(2(3)). Set a max depth on TagExpr to stop
// runaway nesting.
func NestedExpression(r *trace.Registry) trace.Parser[string] {
	var expr trace.Parser[string]
	nested := c.Map(
		c.Pair(c.Digit1(), c.Delimited(c.Tag("("), c.Lazy(func() trace.Parser[string] { return expr }), c.Tag(")"))),
		func(t c.Tuple2[string, string]) string { return t.First + "(" + t.Second + ")" },
	)
	expr = trace.Wrap(r, TagExpr, "", "Parsing nested expression", c.Alt(nested, c.Digit1()))
	return expr
}

// Expressions parses a run of nested expressions on the default tag.
func Expressions(r *trace.Registry) trace.Parser[[]string] {
	return trace.Wrap(r, trace.DefaultTag, "", "Parsing full expression", c.Many0(NestedExpression(r)))
}

func init() {
	register(Grammar{
		Name:        "expr",
		Description: "nested expressions like 1(2(3)), traced on " + TagExpr,
		Tag:         TagExpr,
		Input:       "1(2(3(4)))",
		Build:       func(r *trace.Registry) trace.Parser[any] { return erase(Expressions(r)) },
	})
}
