package grammar

import (
	c "parsetrace/internal/combinator"
	"parsetrace/internal/trace"
)

// Greeting parses "hello" followed by a name on the default tag.
func Greeting(r *trace.Registry) trace.Parser[c.Tuple2[string, string]] {
	return trace.Wrap(r, trace.DefaultTag, "Parsing a greeting (format: 'hello' + name)", "parse_greeting",
		c.Pair(
			trace.Wrap(r, trace.DefaultTag, "Parsing 'hello'", "hello", c.Tag("hello")),
			trace.Wrap(r, trace.DefaultTag, "Parsing name", "name", c.Alpha1()),
		))
}

// Tags used by UserID.
const (
	TagUser      = "user_parser"
	TagName      = "name_parser"
	TagSeparator = "separator_parser"
	TagID        = "id_parser"
)

// UserID parses name-number, each piece on its own tag.
func UserID(r *trace.Registry) trace.Parser[c.Tuple3[string, string, string]] {
	return trace.Wrap(r, TagUser, "Parsing user ID (format: name-number)", "parse_user_id",
		c.Tuple(
			trace.Wrap(r, TagName, "Parsing name", "name", c.Alpha1()),
			trace.Wrap(r, TagSeparator, "", "separator", c.Tag("-")),
			trace.Wrap(r, TagID, "Parsing ID number", "id", c.Digit1()),
		))
}

// UserInfo parses name-age on the default tag; errors carry breadcrumbs when
// the registry has an enricher.
func UserInfo(r *trace.Registry) trace.Parser[c.Tuple2[string, string]] {
	info := c.Tuple(
		trace.Wrap(r, trace.DefaultTag, "Parsing name", "name", c.Alpha1()),
		trace.Wrap(r, trace.DefaultTag, "Parsing separator", "separator", c.Tag("-")),
		trace.Wrap(r, trace.DefaultTag, "Parsing age", "age", c.Digit1()),
	)
	return trace.Wrap(r, trace.DefaultTag, "Parsing user info (format: name-age)", "parse_user_info",
		c.Map(info, func(t c.Tuple3[string, string, string]) c.Tuple2[string, string] {
			return c.Tuple2[string, string]{First: t.First, Second: t.Third}
		}))
}

func init() {
	register(Grammar{
		Name:        "greeting",
		Description: "'hello' followed by a name",
		Tag:         trace.DefaultTag,
		Input:       "helloworld",
		Build:       func(r *trace.Registry) trace.Parser[any] { return erase(Greeting(r)) },
	})
	register(Grammar{
		Name:        "userid",
		Description: "name-number, one tag per piece",
		Tag:         TagUser,
		Input:       "john-123",
		Build:       func(r *trace.Registry) trace.Parser[any] { return erase(UserID(r)) },
	})
	register(Grammar{
		Name:        "userinfo",
		Description: "name-age with error breadcrumbs",
		Tag:         trace.DefaultTag,
		Input:       "john-30",
		Build:       func(r *trace.Registry) trace.Parser[any] { return erase(UserInfo(r)) },
	})
}
