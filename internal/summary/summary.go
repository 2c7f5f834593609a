// Package summary builds the grouped, priority-sorted view of every
// task across all daily notes. It reads source documents and writes
// exactly one artifact, the generated summary document; source notes
// are never touched.
package summary

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
	"github.com/ravivyas84/dailynotes-panel/internal/task"
)

// ErrNotGenerated guards regeneration: an existing summary file that
// does not carry the generated marker is someone's hand-written note
// and must not be overwritten.
var ErrNotGenerated = errors.New("existing file is not a generated summary")

// UngroupedSection is the reserved bucket for tasks with no project
// tag. It renders after every project section regardless of alphabet.
const UngroupedSection = "Ungrouped"

// Entry is one task tagged with the period document it came from.
type Entry struct {
	Task   task.Task
	Period string
}

// frontMatter is the machine marker at the top of the exported
// document.
type frontMatter struct {
	Generated bool   `yaml:"generated"`
	Generator string `yaml:"generator"`
}

// Collect parses tasks out of every period document, best effort:
// unreadable files are skipped and the pass continues. Entries come
// back in date order, preserving line order within a document, which
// is the encounter order the stable sort must preserve.
func Collect(ws *journal.Workspace) ([]Entry, []journal.SkippedFile) {
	docs, skipped := ws.PeriodDocs()
	var entries []Entry
	for _, doc := range docs {
		content, err := ws.ReadDoc(doc.Path)
		if err != nil {
			skipped = append(skipped, journal.SkippedFile{Path: doc.Path, Reason: "unreadable"})
			continue
		}
		for _, t := range task.ParseDocument(content) {
			if t.Text == "" {
				continue
			}
			t.SourceFile = doc.Path
			t.SourceDate = doc.Stem()
			entries = append(entries, Entry{Task: t, Period: doc.Stem()})
		}
	}
	return entries, skipped
}

// Render produces the summary text. With openOnly, completed tasks are
// filtered out (the live view); otherwise every task is kept (the
// exported document). A task appears once under each of its project
// tags; tagless tasks land in the Ungrouped bucket, rendered last.
func Render(entries []Entry, openOnly bool) string {
	groups := map[string][]Entry{}
	for _, e := range entries {
		if openOnly && e.Task.Completed {
			continue
		}
		if len(e.Task.Projects) == 0 {
			groups[UngroupedSection] = append(groups[UngroupedSection], e)
			continue
		}
		seen := map[string]bool{}
		for _, p := range e.Task.Projects {
			if seen[p] {
				continue
			}
			seen[p] = true
			groups[p] = append(groups[p], e)
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		if name != UngroupedSection {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := groups[UngroupedSection]; ok {
		names = append(names, UngroupedSection)
	}

	var b strings.Builder
	b.WriteString("# Task Summary\n\n")
	for _, name := range names {
		if name == UngroupedSection {
			b.WriteString("## " + UngroupedSection + "\n")
		} else {
			b.WriteString("## +" + name + "\n")
		}
		group := groups[name]
		sort.SliceStable(group, func(i, j int) bool {
			return priorityRank(group[i].Task) < priorityRank(group[j].Task)
		})
		for _, e := range group {
			b.WriteString(e.Task.Render())
			b.WriteString(" ([[" + e.Period + "]])\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func priorityRank(t task.Task) int {
	if !t.HasPriority() {
		return 'Z' + 1
	}
	return int(t.Priority)
}

func marker() string {
	b, _ := yaml.Marshal(frontMatter{Generated: true, Generator: "dailynotes"})
	return "---\n" + string(b) + "---\n\n<!-- generated, do not hand-edit -->\n\n"
}

// IsGenerated reports whether content carries the generated marker.
func IsGenerated(content string) bool {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return false
	}
	parts := strings.SplitN(content, "\n---\n", 2)
	if len(parts) != 2 {
		return false
	}
	var fm frontMatter
	if err := yaml.Unmarshal([]byte(strings.TrimPrefix(parts[0], "---\n")), &fm); err != nil {
		return false
	}
	return fm.Generated
}

// Regenerate writes the exported summary document — the rendered view
// behind the generated marker — refusing to overwrite a file that is
// not itself a generated summary.
func Regenerate(ws *journal.Workspace) (string, []journal.SkippedFile, error) {
	entries, skipped := Collect(ws)
	out := marker() + Render(entries, false)
	path := ws.SummaryPath()
	if existing, err := ws.ReadDoc(path); err == nil {
		if !IsGenerated(existing) {
			return "", skipped, fmt.Errorf("%w: %s", ErrNotGenerated, path)
		}
	} else if !errors.Is(err, journal.ErrNotFound) {
		return "", skipped, err
	}
	if err := ws.WriteDoc(path, out); err != nil {
		return "", skipped, err
	}
	return path, skipped, nil
}
