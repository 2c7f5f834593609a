// Package task models one checkbox list item extracted from a note,
// together with the line grammar that recognizes it, the metadata
// token codec, and the identifier allocator.
package task

import (
	"regexp"
	"strings"
)

// Meta holds the machine-readable stamps carried at the end of a task
// line. Empty fields are absent; Encode omits them entirely.
type Meta struct {
	ID  string
	CD  string
	Due string
	DD  string
}

// Task is one parsed checkbox line. Text keeps tags and decorators
// inline; metadata tokens remain in Text until DecodeMeta strips them.
type Task struct {
	Completed bool
	Priority  byte // 'A'..'Z', zero when absent
	Text      string
	Projects  []string
	Contexts  []string
	Meta      Meta

	// Provenance, filled by the scanners.
	SourceDate string
	SourceFile string
	LineNo     int
	Raw        string

	// List style as written, preserved across rewrites.
	Indent string
	Marker string
}

var (
	lineRe     = regexp.MustCompile(`^(\s*)([-*+])\s+\[([ xX])\](?:\s+(.*))?$`)
	priorityRe = regexp.MustCompile(`^\(([A-Z])\)\s+(.*)$`)
	tagRe      = regexp.MustCompile(`(^|\s)([+@])(\S+)`)
)

// ParseLine classifies one line of text. The second return is false
// for anything that is not a checkbox list item; that is a negative
// classification, never an error, and such lines must be left alone.
func ParseLine(line string) (Task, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Task{}, false
	}
	t := Task{
		Indent:    m[1],
		Marker:    m[2],
		Completed: m[3] == "x" || m[3] == "X",
		Raw:       line,
	}
	body := m[4]
	if pm := priorityRe.FindStringSubmatch(body); pm != nil {
		t.Priority = pm[1][0]
		body = pm[2]
	}
	t.Text = body
	for _, tm := range tagRe.FindAllStringSubmatch(body, -1) {
		switch tm[2] {
		case "+":
			t.Projects = append(t.Projects, tm[3])
		case "@":
			t.Contexts = append(t.Contexts, tm[3])
		}
	}
	return t, true
}

// HasPriority reports whether the task carries a priority marker.
func (t Task) HasPriority() bool { return t.Priority != 0 }

// Checkbox renders the completion flag as it appears on disk.
func (t Task) Checkbox() string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// Render rebuilds the canonical line for the task from its parts.
// The metadata suffix comes last, after the human-readable text.
func (t Task) Render() string {
	var b strings.Builder
	b.WriteString(t.Indent)
	b.WriteString(t.Marker)
	b.WriteString(" ")
	b.WriteString(t.Checkbox())
	b.WriteString(" ")
	if t.HasPriority() {
		b.WriteString("(")
		b.WriteByte(t.Priority)
		b.WriteString(") ")
	}
	b.WriteString(t.Text)
	b.WriteString(t.Meta.Encode())
	return b.String()
}

// HasDecorator reports whether the task text already carries the given
// decorator, e.g. "~[[2026-02-21]]". Decorators live in the free text
// and are matched literally.
func (t Task) HasDecorator(dec string) bool {
	return strings.Contains(t.Text, dec)
}
