package semequal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

const (
	expectedBanner = "################### Expected:"
	actualBanner   = "******************* Actual:"
)

// Render builds the diagnostic report for a failed comparison: the full
// expected document, the full actual document & a description of the
// failure. Render is deterministic & never modifies its inputs
func Render(expected, actual *Node, f *Failure) string {
	return report(expected, actual, f, newPalette(false))
}

// FormatPretty writes the report built by Render to w. if colorTTY is true it
// will add
// green for the expected banner
// red for the actual banner
// yellow for the failure description
func FormatPretty(w io.Writer, expected, actual *Node, f *Failure, colorTTY bool) error {
	_, err := io.WriteString(w, report(expected, actual, f, newPalette(colorTTY)))
	return err
}

func report(expected, actual *Node, f *Failure, p palette) string {
	buf := &strings.Builder{}
	buf.WriteString(p.expected(expectedBanner))
	buf.WriteByte('\n')
	buf.WriteString(Pretty(expected))
	buf.WriteString("\n\n")
	buf.WriteString(p.actual(actualBanner))
	buf.WriteByte('\n')
	buf.WriteString(Pretty(actual))
	buf.WriteString("\n\n")
	buf.WriteString(p.failure(describe(f)))
	buf.WriteByte('\n')
	return buf.String()
}

// describe writes the multi-line description of a failure. Scalars are
// written as JSON, so a string value shows quoted: Expected: "EUR"
func describe(f *Failure) string {
	if f == nil {
		return "Documents are equal"
	}
	switch f.Kind {
	case FKTypeMismatch:
		return typeMismatchMessage(f)
	case FKUnexpectedPresence:
		return presenceMessage(f)
	case FKObjectSizeMismatch:
		return fmt.Sprintf("Objects for path %s are different.\nExpected:\n%s\nActual:\n%s", f.Path, Pretty(f.Expected), Pretty(f.Actual))
	case FKMissingProperty:
		return fmt.Sprintf("Property: '%s' is missing in actual object\nExpected:\n%s\nActual:\n%s", f.Path, Pretty(f.Expected), Pretty(f.Actual))
	case FKArrayLengthMismatch:
		return fmt.Sprintf("Arrays for path %s have different length.\nExpected:\n%s\nActual:\n%s", f.Path, Pretty(f.Expected), Pretty(f.Actual))
	case FKValueMismatch:
		return fmt.Sprintf("Values for path %s are different.\nExpected: %s\nActual: %s", f.Path, scalarString(f.Expected), scalarString(f.Actual))
	}
	return f.Error()
}

type palette struct {
	expected, actual, failure func(a ...interface{}) string
}

func newPalette(colorTTY bool) palette {
	if !colorTTY {
		return palette{expected: fmt.Sprint, actual: fmt.Sprint, failure: fmt.Sprint}
	}
	return palette{
		expected: colorFunc(color.FgGreen),
		actual:   colorFunc(color.FgRed),
		failure:  colorFunc(color.FgYellow, color.Bold),
	}
}

// colorFunc forces color on, whatever fatih/color detected about stdout.
// callers decide if the destination is a terminal
func colorFunc(attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintFunc()
}

// FormatLineDiff writes a line by line diff of the pretty renderings of two
// documents, "-" marking expected lines & "+" marking actual lines
func FormatLineDiff(w io.Writer, expected, actual *Node, colorTTY bool) error {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(Pretty(expected)+"\n", Pretty(actual)+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	p := newPalette(colorTTY)
	buf := &strings.Builder{}
	for _, d := range diffs {
		prefix, paint := "  ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "- ", p.expected
		case diffpatch.DiffInsert:
			prefix, paint = "+ ", p.actual
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(paint(prefix + strings.TrimSuffix(line, "\n")))
			buf.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(st *Stats) string {
	if st == nil {
		return "<nil>"
	}

	nodesWord := "nodes"
	if st.Compared == 1 {
		nodesWord = "node"
	}
	subtreesWord := "subtrees"
	if st.Excluded == 1 {
		subtreesWord = "subtree"
	}
	return fmt.Sprintf("%d %s compared. %d %s excluded. max depth %d.\n", st.Compared, nodesWord, st.Excluded, subtreesWord, st.MaxDepth)
}

// Pretty renders a tree as JSON indented by two spaces, with object keys in
// stored order. an absent node renders as null
func Pretty(n *Node) string {
	buf := &strings.Builder{}
	writeNode(buf, n, 0, true)
	return buf.String()
}

// String renders a tree as compact JSON
func (n *Node) String() string {
	return compact(n)
}

func compact(n *Node) string {
	buf := &strings.Builder{}
	writeNode(buf, n, 0, false)
	return buf.String()
}

func scalarString(n *Node) string {
	return compact(n)
}

func writeNode(buf *strings.Builder, n *Node, depth int, pretty bool) {
	if n == nil {
		buf.WriteString("null")
		return
	}

	switch n.Type {
	case NTObject:
		if len(n.Fields) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, depth+1, pretty)
			buf.WriteString(quote(f.Key))
			buf.WriteByte(':')
			if pretty {
				buf.WriteByte(' ')
			}
			writeNode(buf, f.Value, depth+1, pretty)
		}
		newline(buf, depth, pretty)
		buf.WriteByte('}')
	case NTArray:
		if len(n.Elems) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteByte('[')
		for i, el := range n.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, depth+1, pretty)
			writeNode(buf, el, depth+1, pretty)
		}
		newline(buf, depth, pretty)
		buf.WriteByte(']')
	case NTString:
		buf.WriteString(quote(n.Str))
	case NTNumber:
		// literals that aren't JSON numbers (NaN, .inf from YAML) are quoted in
		// compact output so it stays valid JSON
		if !pretty && !json.Valid([]byte(n.Str)) {
			buf.WriteString(quote(n.Str))
			return
		}
		buf.WriteString(n.Str)
	case NTBool:
		if n.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	default:
		buf.WriteString("null")
	}
}

func newline(buf *strings.Builder, depth int, pretty bool) {
	if !pretty {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat("  ", depth))
}

// quote writes s as a JSON string without escaping HTML characters
func quote(s string) string {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
