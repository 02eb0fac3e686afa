// Package lines models task content as a checkbox list. A checkbox line has
// the canonical form "<indent>- [x] <label>" (or "- [ ] " when unchecked); any
// other line is kept as plain text. Every operation returns a new slice and
// treats an out-of-range index as a no-op.
package lines

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

const (
	// IndentUnit is one indent step. Levels are counted in pairs of spaces.
	IndentUnit = "  "
	// IndentPixels is the visual offset of one indent level.
	IndentPixels = 12
)

var (
	checkboxPattern  = regexp.MustCompile(`^(\s*)-\s*\[([ x])\]\s*(.*)$`)
	completedPattern = regexp.MustCompile(`^(\s*)-\s*\[x\]\s*(.+)$`)
)

type Line struct {
	Checkbox bool
	Indent   string
	Checked  bool
	Label    string
	// Text is the raw line for plain lines and unused for checkbox lines.
	Text string
}

func Plain(text string) Line {
	return Line{Text: text}
}

func Checkbox(indent string, checked bool, label string) Line {
	return Line{Checkbox: true, Indent: indent, Checked: checked, Label: label}
}

func (l Line) IndentLevel() int {
	if !l.Checkbox {
		return 0
	}
	return len(l.Indent) / 2
}

func (l Line) Offset() int {
	return l.IndentLevel() * IndentPixels
}

// Empty reports whether the line has no visible content.
func (l Line) Empty() bool {
	if l.Checkbox {
		return strings.TrimSpace(l.Label) == ""
	}
	return strings.TrimSpace(l.Text) == ""
}

func (l Line) String() string {
	if !l.Checkbox {
		return l.Text
	}
	mark := " "
	if l.Checked {
		mark = "x"
	}
	return l.Indent + "- [" + mark + "] " + l.Label
}

func ParseLine(raw string) Line {
	m := checkboxPattern.FindStringSubmatch(raw)
	if m == nil {
		return Plain(raw)
	}
	return Checkbox(m[1], m[2] == "x", m[3])
}

// Parse never fails: lines that do not match the checkbox grammar are plain.
func Parse(text string) []Line {
	raw := strings.Split(text, "\n")
	out := make([]Line, 0, len(raw))
	for _, r := range raw {
		out = append(out, ParseLine(r))
	}
	return out
}

func Serialize(ls []Line) string {
	parts := make([]string, 0, len(ls))
	for _, l := range ls {
		parts = append(parts, l.String())
	}
	return strings.Join(parts, "\n")
}

func inRange(ls []Line, i int) bool {
	return i >= 0 && i < len(ls)
}

// Toggle sets the check state of a checkbox line. Label and indent are kept.
func Toggle(ls []Line, i int, checked bool) []Line {
	out := slices.Clone(ls)
	if !inRange(out, i) || !out[i].Checkbox {
		return out
	}
	out[i].Checked = checked
	return out
}

// InsertAfter inserts an empty unchecked checkbox at i+1. The indent is copied
// from line i when inheritIndent is set. i may be -1 to insert at the top.
func InsertAfter(ls []Line, i int, inheritIndent bool) []Line {
	if i < -1 || i >= len(ls) {
		return slices.Clone(ls)
	}
	indent := ""
	if inheritIndent && i >= 0 {
		indent = ls[i].Indent
	}
	return slices.Insert(slices.Clone(ls), i+1, Checkbox(indent, false, ""))
}

// Break is the Enter key: a checkbox line continues the list at the same
// indent, a plain line opens an empty plain line.
func Break(ls []Line, i int) []Line {
	if !inRange(ls, i) {
		return slices.Clone(ls)
	}
	if ls[i].Checkbox {
		return InsertAfter(ls, i, true)
	}
	return slices.Insert(slices.Clone(ls), i+1, Plain(""))
}

func Indent(ls []Line, i int) []Line {
	out := slices.Clone(ls)
	if !inRange(out, i) {
		return out
	}
	if out[i].Checkbox {
		out[i].Indent = IndentUnit + out[i].Indent
	} else {
		out[i].Text = IndentUnit + out[i].Text
	}
	return out
}

// Outdent removes one indent pair; a line without a leading pair is unchanged.
func Outdent(ls []Line, i int) []Line {
	out := slices.Clone(ls)
	if !inRange(out, i) {
		return out
	}
	if out[i].Checkbox {
		out[i].Indent = strings.TrimPrefix(out[i].Indent, IndentUnit)
	} else {
		out[i].Text = strings.TrimPrefix(out[i].Text, IndentUnit)
	}
	return out
}

// RemoveIfEmpty deletes line i when it has no content and reports the index
// that should receive focus next (the previous line, or 0).
func RemoveIfEmpty(ls []Line, i int) ([]Line, int, bool) {
	if !inRange(ls, i) || !ls[i].Empty() {
		return slices.Clone(ls), i, false
	}
	out := slices.Delete(slices.Clone(ls), i, i+1)
	focus := i - 1
	if focus < 0 {
		focus = 0
	}
	return out, focus, true
}

// NextUnchecked returns the first unchecked checkbox line in document order.
func NextUnchecked(ls []Line) (int, bool) {
	for i, l := range ls {
		if l.Checkbox && !l.Checked {
			return i, true
		}
	}
	return -1, false
}

// SetLabel commits an edit. An empty label on a checkbox line is rejected and
// the previous label kept; plain lines accept any text.
func SetLabel(ls []Line, i int, label string) ([]Line, bool) {
	out := slices.Clone(ls)
	if !inRange(out, i) {
		return out, false
	}
	if out[i].Checkbox {
		if strings.TrimSpace(label) == "" {
			return out, false
		}
		out[i].Label = label
		return out, true
	}
	out[i].Text = label
	return out, true
}

// ToCheckbox turns plain line i into an unchecked checkbox carrying its text.
func ToCheckbox(ls []Line, i int) []Line {
	out := slices.Clone(ls)
	if !inRange(out, i) || out[i].Checkbox {
		return out
	}
	out[i] = ParseLine("- [ ] " + out[i].Text)
	return out
}

func Progress(ls []Line) (done, total int) {
	for _, l := range ls {
		if !l.Checkbox {
			continue
		}
		total++
		if l.Checked {
			done++
		}
	}
	return done, total
}

// CompletedLabels extracts the labels of checked lines from raw content. A
// checked line needs at least one character after the box to count.
func CompletedLabels(text string) []string {
	out := make([]string, 0)
	if text == "" {
		return out
	}
	for _, raw := range strings.Split(text, "\n") {
		if m := completedPattern.FindStringSubmatch(raw); m != nil {
			out = append(out, strings.TrimLeftFunc(m[2], unicode.IsSpace))
		}
	}
	return out
}
