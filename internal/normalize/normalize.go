// Package normalize rewrites task lines into canonical form: identity
// and creation stamps assigned, the completion stamp kept in lockstep
// with the checkbox, metadata tokens in fixed order at the line end.
// A pass over already-canonical text produces no edits, which is what
// keeps repeated application (and save-triggered re-entry) quiet.
package normalize

import (
	"strings"

	"github.com/ravivyas84/dailynotes-panel/internal/task"
)

// Edit is one line replacement. Line is 1-based. Old is the line as
// read, kept so appliers can detect that the document moved underneath
// the pass.
type Edit struct {
	Line int
	Old  string
	New  string
}

// Pass computes the minimal edit set that canonicalizes content.
// periodDate is the owning document's date in the workspace format, or
// "" for non-period documents; today is the current date in the same
// format. The allocator must be pre-seeded with every identifier the
// caller knows about, including the ones in this document.
func Pass(content, periodDate, today string, alloc *task.Allocator) []Edit {
	lines := strings.Split(content, "\n")

	// Reserve every id in the document before minting any, so a new id
	// for line 2 cannot collide with an existing id on line 9.
	for _, id := range task.DocumentIDs(content) {
		alloc.Reserve(id)
	}

	var edits []Edit
	for i, line := range lines {
		t, ok := task.ParseLine(line)
		if !ok {
			continue
		}
		clean, m := task.DecodeMeta(t.Text)
		if clean == "" {
			continue
		}
		if m.ID == "" {
			m.ID = alloc.Next()
		}
		if m.CD == "" {
			if periodDate != "" {
				m.CD = periodDate
			} else {
				m.CD = today
			}
		}
		if t.Completed && m.DD == "" {
			m.DD = today
		}
		if !t.Completed && m.DD != "" {
			m.DD = ""
		}
		t.Text = clean
		t.Meta = m
		rebuilt := t.Render()
		if rebuilt != line {
			edits = append(edits, Edit{Line: i + 1, Old: line, New: rebuilt})
		}
	}
	return edits
}

// Apply returns content with the edits applied. Edits whose Old no
// longer matches are dropped rather than clobbering changed text.
func Apply(content string, edits []Edit) string {
	if len(edits) == 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for _, e := range edits {
		idx := e.Line - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		if lines[idx] != e.Old {
			continue
		}
		lines[idx] = e.New
	}
	return strings.Join(lines, "\n")
}
