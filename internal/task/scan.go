package task

import "strings"

// ParseDocument extracts every task from a document's text. Metadata
// tokens are decoded out of the text, line numbers are 1-based, and
// Raw keeps each line exactly as read for change detection. Non-task
// lines are skipped.
func ParseDocument(content string) []Task {
	var out []Task
	for i, line := range strings.Split(content, "\n") {
		t, ok := ParseLine(line)
		if !ok {
			continue
		}
		t.Text, t.Meta = DecodeMeta(t.Text)
		t.LineNo = i + 1
		out = append(out, t)
	}
	return out
}

// DocumentIDs collects every identifier present in a document,
// including ones on lines the normalizer would otherwise skip. Used to
// seed the allocator so ids minted in one pass cannot collide with
// anything already on disk.
func DocumentIDs(content string) []string {
	var ids []string
	for _, t := range ParseDocument(content) {
		if t.Meta.ID != "" {
			ids = append(ids, t.Meta.ID)
		}
	}
	return ids
}
