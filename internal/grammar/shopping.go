package grammar

import (
	c "parsetrace/internal/combinator"
	"parsetrace/internal/trace"
)

// Item is one name:quantity entry of a shopping list.
type Item struct {
	Name     string
	Quantity string
}

func (i Item) String() string { return i.Name + ":" + i.Quantity }

func item(r *trace.Registry) trace.Parser[Item] {
	fields := c.Tuple(
		trace.Wrap(r, trace.DefaultTag, "", "Parsing item name", c.Alpha1()),
		trace.Wrap(r, trace.DefaultTag, "", "Parsing item separator", c.Tag(":")),
		trace.Wrap(r, trace.DefaultTag, "", "Parsing item quantity", c.Digit1()),
	)
	return trace.Wrap(r, trace.DefaultTag, "", "Parsing item (format: name:quantity)",
		c.Map(fields, func(t c.Tuple3[string, string, string]) Item {
			return Item{Name: t.First, Quantity: t.Third}
		}))
}

// ShoppingList parses comma-terminated name:quantity items.
// With silenced set, every item subtree is kept out of the default trace.
func ShoppingList(r *trace.Registry, silenced bool) trace.Parser[[]Item] {
	var entry trace.Parser[Item]
	if silenced {
		entry = trace.Silence(r, trace.DefaultTag, "", "Parsing list item (silenced)", item(r))
	} else {
		entry = trace.Wrap(r, trace.DefaultTag, "", "Parsing list item", item(r))
	}
	sep := trace.Wrap(r, trace.DefaultTag, "", "Parsing item separator", c.Opt(c.Tag(",")))
	return trace.Wrap(r, trace.DefaultTag, "", "Parsing shopping list", c.Many1(c.Terminated(entry, sep)))
}

func init() {
	register(Grammar{
		Name:        "shopping",
		Description: "name:quantity items separated by commas",
		Tag:         trace.DefaultTag,
		Input:       "apple:3,banana:2,orange:5",
		Build:       func(r *trace.Registry) trace.Parser[any] { return erase(ShoppingList(r, false)) },
	})
	register(Grammar{
		Name:        "shopping-silenced",
		Description: "shopping list with each item subtree silenced",
		Tag:         trace.DefaultTag,
		Input:       "apple:3,banana:2,orange:5",
		Build:       func(r *trace.Registry) trace.Parser[any] { return erase(ShoppingList(r, true)) },
	})
}
