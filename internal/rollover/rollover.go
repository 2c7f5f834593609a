// Package rollover carries uncompleted tasks from the most recent
// prior daily note into a new one. Originals are marked with a
// migration decorator; the copies are written bare so the next
// normalization pass stamps them as fresh task instances.
package rollover

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
	"github.com/ravivyas84/dailynotes-panel/internal/task"
)

// Result summarizes one roll-forward invocation.
type Result struct {
	Source  string // source document path, "" when nothing to roll
	Target  string // target document path
	Carried int
}

// MigratedDecorator is the in-text annotation added to a source line
// that has been carried to stem.
func MigratedDecorator(stem string) string {
	return "~[[" + stem + "]]"
}

// OriginDecorator is the in-text annotation on a mirrored copy naming
// the document it came from.
func OriginDecorator(stem string) string {
	return ">[[" + stem + "]]"
}

// RollAll carries every eligible uncompleted task from the most recent
// period document before target into target's document. Tasks already
// bearing the target's migration decorator are skipped, so repeated
// invocations do not duplicate carries. No prior document is a no-op,
// not an error.
func RollAll(ws *journal.Workspace, target time.Time) (Result, error) {
	src, ok := ws.LatestBefore(target)
	if !ok {
		return Result{}, nil
	}
	content, err := ws.ReadDoc(src.Path)
	if err != nil {
		// Unreadable source degrades to "no data" for that file.
		return Result{}, nil
	}
	targetStem := ws.FormatDate(target)
	dec := MigratedDecorator(targetStem)

	var carry []task.Task
	for _, t := range task.ParseDocument(content) {
		if t.Completed || t.Text == "" || t.HasDecorator(dec) {
			continue
		}
		carry = append(carry, t)
	}
	if len(carry) == 0 {
		return Result{Source: src.Path}, nil
	}

	doc, _, err := ws.EnsurePeriodDoc(target)
	if err != nil {
		return Result{}, err
	}
	if err := ws.AppendLines(doc.Path, carryLines(carry)); err != nil {
		return Result{}, err
	}

	marked := content
	for _, t := range carry {
		marked = markLine(marked, t, dec)
	}
	if err := ws.WriteDoc(src.Path, marked); err != nil {
		return Result{}, err
	}
	return Result{Source: src.Path, Target: doc.Path, Carried: len(carry)}, nil
}

// RollLine applies the same marking rule to exactly one line of one
// document, carrying it into target's document. A line that is not a
// task is ErrInvalid; a line already carried is a no-op.
func RollLine(ws *journal.Workspace, path string, lineNo int, target time.Time) (Result, error) {
	content, err := ws.ReadDoc(path)
	if err != nil {
		return Result{}, err
	}
	lines := strings.Split(content, "\n")
	if lineNo < 1 || lineNo > len(lines) {
		return Result{}, fmt.Errorf("%w: line %d out of range", journal.ErrInvalid, lineNo)
	}
	t, ok := task.ParseLine(lines[lineNo-1])
	if !ok {
		return Result{}, fmt.Errorf("%w: line %d is not a task", journal.ErrInvalid, lineNo)
	}
	t.Text, t.Meta = task.DecodeMeta(t.Text)
	t.LineNo = lineNo
	if t.Text == "" {
		return Result{}, fmt.Errorf("%w: line %d is empty", journal.ErrInvalid, lineNo)
	}
	targetStem := ws.FormatDate(target)
	dec := MigratedDecorator(targetStem)
	if t.HasDecorator(dec) {
		return Result{Source: path}, nil
	}

	doc, _, err := ws.EnsurePeriodDoc(target)
	if err != nil {
		return Result{}, err
	}
	if err := ws.AppendLines(doc.Path, carryLines([]task.Task{t})); err != nil {
		return Result{}, err
	}
	if err := ws.WriteDoc(path, markLine(content, t, dec)); err != nil {
		return Result{}, err
	}
	return Result{Source: path, Target: doc.Path, Carried: 1}, nil
}

// carryLines renders the new task lines for the target document,
// sorted by priority, with no metadata tokens pre-populated. A carried
// task is a new instance; the normalizer mints its id and creation
// stamp on the next pass.
func carryLines(carry []task.Task) []string {
	sorted := make([]task.Task, len(carry))
	copy(sorted, carry)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityRank(sorted[i]) < priorityRank(sorted[j])
	})
	lines := make([]string, 0, len(sorted))
	for _, t := range sorted {
		nt := task.Task{Marker: "-", Priority: t.Priority, Text: t.Text}
		lines = append(lines, nt.Render())
	}
	return lines
}

func priorityRank(t task.Task) int {
	if !t.HasPriority() {
		return 'Z' + 1
	}
	return int(t.Priority)
}

// markLine rewrites t's line in content with the migration decorator
// appended to its text. The line is located by number and verified
// against the task's raw text first.
func markLine(content string, t task.Task, dec string) string {
	lines := strings.Split(content, "\n")
	idx := t.LineNo - 1
	if idx < 0 || idx >= len(lines) || lines[idx] != t.Raw {
		return content
	}
	t.Text = t.Text + " " + dec
	lines[idx] = t.Render()
	return strings.Join(lines, "\n")
}
