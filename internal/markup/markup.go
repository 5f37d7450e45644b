// Package markup parses the inline highlighting used in room descriptions and
// responses. A span wrapped in *asterisks* names an exit, one wrapped in
// %percent signs% names an object, and one wrapped in +plus signs+ is text the
// player could type.
package markup

import (
	"strings"

	"github.com/gookit/color"
)

// Kind is the type of a span of text.
type Kind int

const (
	Plain Kind = iota
	Exit
	Object
	Input
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Exit:
		return "exit"
	case Object:
		return "object"
	case Input:
		return "input"
	default:
		return "unknown"
	}
}

const delimiters = "*%+"

func kindFor(delim byte) Kind {
	switch delim {
	case '*':
		return Exit
	case '%':
		return Object
	default:
		return Input
	}
}

// Span is a run of text of a single Kind.
type Span struct {
	Text string
	Kind Kind
}

// Parse splits line into spans. A delimiter with no matching closing delimiter
// is kept as plain text.
func Parse(line string) []Span {
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String(), Kind: Plain})
			plain.Reset()
		}
	}

	i := 0
	for i < len(line) {
		if strings.IndexByte(delimiters, line[i]) >= 0 {
			end := strings.IndexByte(line[i+1:], line[i])
			if end >= 0 {
				flush()
				spans = append(spans, Span{Text: line[i+1 : i+1+end], Kind: kindFor(line[i])})
				i += end + 2
				continue
			}
		}
		plain.WriteByte(line[i])
		i++
	}
	flush()

	return spans
}

// Strip returns line with all markup delimiters removed.
func Strip(line string) string {
	var sb strings.Builder
	for _, sp := range Parse(line) {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

// Styles is the console colouring applied to each Kind.
type Styles map[Kind]color.Style

// DefaultStyles returns the console styles for highlighted spans.
func DefaultStyles() Styles {
	return Styles{
		Exit:   color.Style{color.FgCyan, color.OpBold},
		Object: color.Style{color.FgMagenta},
		Input:  color.Style{color.FgGray},
	}
}

// Render returns line with markup replaced by console colour codes. Kinds
// with no style are rendered as plain text.
func (s Styles) Render(line string) string {
	var sb strings.Builder
	for _, sp := range Parse(line) {
		st, ok := s[sp.Kind]
		if !ok || sp.Kind == Plain {
			sb.WriteString(sp.Text)
			continue
		}
		sb.WriteString(st.Sprint(sp.Text))
	}
	return sb.String()
}
