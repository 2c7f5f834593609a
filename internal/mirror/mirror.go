package mirror

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
	"github.com/ravivyas84/dailynotes-panel/internal/rollover"
	"github.com/ravivyas84/dailynotes-panel/internal/task"
)

// Result summarizes one Sync invocation.
type Result struct {
	// Bootstrapped is true when this save captured the document's
	// baseline; nothing is copied on that save.
	Bootstrapped bool
	// CopiedIDs are the identifiers mirrored into today's note.
	CopiedIDs []string
	Target    string
}

// Sync runs the copy-on-create pass for one non-period document that
// was just saved. The document must already be normalized so every
// task carries an identifier. State transitions per document: unseen
// (first save captures the baseline, copies nothing) then monitored
// (each save mirrors identifiers not previously known). Mirrored
// copies keep their identifier so the state can recognize them later;
// this is deliberately asymmetric with rollover, which mints fresh
// ones.
func Sync(ws *journal.Workspace, st *State, path string, today time.Time) (Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, isPeriod := ws.PeriodDate(path); isPeriod {
		return Result{}, nil
	}
	content, err := ws.ReadDoc(path)
	if err != nil {
		return Result{}, err
	}
	tasks := task.ParseDocument(content)

	if !st.Baselined(abs) {
		// Bootstrap: pre-existing tasks are never treated as new.
		st.baselined[abs] = true
		for _, t := range tasks {
			st.remember(t.Meta.ID)
		}
		return Result{Bootstrapped: true}, st.Save()
	}

	var fresh []task.Task
	for _, t := range tasks {
		if t.Meta.ID == "" || t.Text == "" || st.Known(t.Meta.ID) {
			continue
		}
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		return Result{}, nil
	}

	doc, _, err := ws.EnsurePeriodDoc(today)
	if err != nil {
		return Result{}, err
	}
	sourceStem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	origin := rollover.OriginDecorator(sourceStem)
	migrated := rollover.MigratedDecorator(ws.FormatDate(today))

	copies := make([]string, 0, len(fresh))
	for _, t := range fresh {
		ct := t
		ct.Indent = ""
		ct.Marker = "-"
		ct.Text = ct.Text + " " + origin
		copies = append(copies, ct.Render())
	}
	if err := ws.AppendLines(doc.Path, copies); err != nil {
		return Result{}, err
	}

	marked := content
	ids := make([]string, 0, len(fresh))
	for _, t := range fresh {
		marked = markSource(marked, t, migrated)
		st.remember(t.Meta.ID)
		ids = append(ids, t.Meta.ID)
	}
	if err := ws.WriteDoc(path, marked); err != nil {
		return Result{}, err
	}
	return Result{CopiedIDs: ids, Target: doc.Path}, st.Save()
}

func markSource(content string, t task.Task, dec string) string {
	lines := strings.Split(content, "\n")
	idx := t.LineNo - 1
	if idx < 0 || idx >= len(lines) || lines[idx] != t.Raw {
		return content
	}
	if t.HasDecorator(dec) {
		return content
	}
	t.Text = t.Text + " " + dec
	lines[idx] = t.Render()
	return strings.Join(lines, "\n")
}
