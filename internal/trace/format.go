package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Format represents the output format for rendered traces.
type Format uint8

const (
	FormatText   Format = iota // indented human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// String returns the string representation of Format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatNDJSON:
		return "ndjson"
	default:
		return "unknown"
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "ndjson":
		return FormatNDJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid trace format: %q (expected: text|ndjson)", s)
	}
}

const indentMarker = "| "

// Renderer turns events into text. The zero value renders plain text.
type Renderer struct {
	Color    bool   // ANSI colors for text output
	Format   Format // output format
	MaxInput int    // truncate input snapshots to this display width (0 = no limit)
}

// Render formats events in stored order.
func (r Renderer) Render(events []Event) string {
	var sb strings.Builder
	for _, ev := range events {
		sb.WriteString(r.RenderEvent(ev))
	}
	return sb.String()
}

// RenderEvent formats a single event, newline included.
func (r Renderer) RenderEvent(ev Event) string {
	switch r.Format {
	case FormatNDJSON:
		return r.formatNDJSON(ev)
	default:
		if r.Color {
			return r.formatColor(ev)
		}
		return r.formatText(ev)
	}
}

func (r Renderer) snapshot(input string) string {
	if r.MaxInput > 0 && runewidth.StringWidth(input) > r.MaxInput {
		if r.MaxInput <= 3 {
			input = runewidth.Truncate(input, r.MaxInput, "")
		} else {
			input = runewidth.Truncate(input, r.MaxInput, "...")
		}
	}
	return strconv.Quote(input)
}

// formatText formats an event as plain text.
// Format: [indent]location[context]("input") or [indent]location("input") -> Kind(detail)[context]
func (r Renderer) formatText(ev Event) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(indentMarker, ev.Depth))
	sb.WriteString(ev.Location)

	if ev.Kind == KindOpen {
		if ev.Context != "" {
			sb.WriteString("[")
			sb.WriteString(ev.Context)
			sb.WriteString("]")
		}
		sb.WriteString("(")
		sb.WriteString(r.snapshot(ev.Input))
		sb.WriteString(")\n")
		return sb.String()
	}

	sb.WriteString("(")
	sb.WriteString(r.snapshot(ev.Input))
	sb.WriteString(") -> ")
	sb.WriteString(ev.Kind.String())
	sb.WriteString("(")
	sb.WriteString(ev.Detail)
	sb.WriteString(")")
	if ev.Context != "" {
		sb.WriteString("[")
		sb.WriteString(ev.Context)
		sb.WriteString("]")
	}
	sb.WriteString("\n")
	return sb.String()
}

var (
	indentColor  = color.New(color.FgWhite)
	inputColor   = color.New(color.BgHiBlue)
	contextColor = color.New(color.BgCyan)
	kindColors   = map[Kind]*color.Color{
		KindOk:         color.New(color.FgGreen),
		KindError:      color.New(color.FgRed),
		KindFailure:    color.New(color.FgMagenta),
		KindIncomplete: color.New(color.FgYellow),
	}
)

func init() {
	// Renderer.Color decides; the library's terminal detection must not.
	indentColor.EnableColor()
	inputColor.EnableColor()
	contextColor.EnableColor()
	for _, c := range kindColors {
		c.EnableColor()
	}
}

// formatColor carries the same information as formatText with ANSI styling.
func (r Renderer) formatColor(ev Event) string {
	indent := indentColor.Sprint(strings.Repeat(indentMarker, ev.Depth))

	if ev.Kind == KindOpen {
		if ev.Context != "" {
			return fmt.Sprintf("%s%s[%s](%s)\n", indent, ev.Location,
				contextColor.Sprint(ev.Context), inputColor.Sprint(r.snapshot(ev.Input)))
		}
		return fmt.Sprintf("%s%s(%s)\n", indent, ev.Location, inputColor.Sprint(r.snapshot(ev.Input)))
	}

	line := fmt.Sprintf("%s(%s) -> %s(%s)", ev.Location, r.snapshot(ev.Input), ev.Kind, ev.Detail)
	if c, ok := kindColors[ev.Kind]; ok {
		line = c.Sprint(line)
	}
	if ev.Context != "" {
		return fmt.Sprintf("%s%s[%s]\n", indent, line, contextColor.Sprint(ev.Context))
	}
	return indent + line + "\n"
}

// formatNDJSON formats an event as newline-delimited JSON.
func (r Renderer) formatNDJSON(ev Event) string {
	type jsonEvent struct {
		Depth    uint32 `json:"depth"`
		Kind     string `json:"kind"`
		Location string `json:"location"`
		Context  string `json:"context,omitempty"`
		Input    string `json:"input"`
		Detail   string `json:"detail,omitempty"`
	}

	depth, err := safecast.Conv[uint32](ev.Depth)
	if err != nil {
		depth = 0
	}
	input := ev.Input
	if r.MaxInput > 0 && runewidth.StringWidth(input) > r.MaxInput {
		input = runewidth.Truncate(input, r.MaxInput, "...")
	}
	j := jsonEvent{
		Depth:    depth,
		Kind:     strings.ToLower(ev.Kind.String()),
		Location: ev.Location,
		Context:  ev.Context,
		Input:    input,
		Detail:   ev.Detail,
	}

	data, _ := json.Marshal(j)
	return string(data) + "\n"
}
