// Package engine ties the passes together behind the event model: a
// document about to be saved is normalized, a document just saved is
// mirrored, and a watch loop drives both from filesystem events. All
// cross-invocation mutable state (the reentrancy guard, the debounce
// timers, the sync state) lives on one Session constructed at startup
// and disposed at shutdown.
package engine

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
	"github.com/ravivyas84/dailynotes-panel/internal/mirror"
	"github.com/ravivyas84/dailynotes-panel/internal/normalize"
	"github.com/ravivyas84/dailynotes-panel/internal/rollover"
	"github.com/ravivyas84/dailynotes-panel/internal/summary"
	"github.com/ravivyas84/dailynotes-panel/internal/task"
)

type Session struct {
	ws  *journal.Workspace
	st  *mirror.State
	log *zap.Logger

	mu          sync.Mutex
	normalizing map[string]bool

	debounce    map[string]time.Time
	debounceDur time.Duration
}

// NewSession builds the one engine session for a workspace. The sync
// state is loaded here and shared by every event the session handles.
func NewSession(ws *journal.Workspace, log *zap.Logger) (*Session, error) {
	st, err := mirror.LoadState(ws)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		ws:          ws,
		st:          st,
		log:         log,
		normalizing: map[string]bool{},
		debounce:    map[string]time.Time{},
		debounceDur: 500 * time.Millisecond,
	}, nil
}

// Workspace exposes the session's workspace to command wiring.
func (s *Session) Workspace() *journal.Workspace { return s.ws }

func (s *Session) guardAcquire(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.normalizing[path] {
		return false
	}
	s.normalizing[path] = true
	return true
}

func (s *Session) guardRelease(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.normalizing, path)
}

// Normalizing reports whether the session is mid-rewrite on a
// document. Events observed for that path while true are the
// session's own writes and must be short-circuited.
func (s *Session) Normalizing(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.normalizing[path]
}

// workspaceIDs collects every identifier anywhere in the workspace, so
// a freshly minted id can never collide with one in another document.
func (s *Session) workspaceIDs() []string {
	var ids []string
	for _, path := range s.ws.Notes() {
		content, err := s.ws.ReadDoc(path)
		if err != nil {
			continue
		}
		ids = append(ids, task.DocumentIDs(content)...)
	}
	return ids
}

// NormalizeDoc runs the canonicalization pass over one document and
// applies any edits. It returns the number of lines rewritten. A
// reentrant call for a document already being normalized is a no-op.
func (s *Session) NormalizeDoc(path string) (int, error) {
	if !s.guardAcquire(path) {
		return 0, nil
	}
	defer s.guardRelease(path)

	content, err := s.ws.ReadDoc(path)
	if err != nil {
		return 0, err
	}
	periodDate := ""
	if d, ok := s.ws.PeriodDate(path); ok {
		periodDate = s.ws.FormatDate(d)
	}
	today := s.ws.FormatDate(s.ws.Today())
	alloc := task.NewAllocator(s.workspaceIDs())
	edits := normalize.Pass(content, periodDate, today, alloc)
	if len(edits) == 0 {
		return 0, nil
	}
	if err := s.ws.WriteDoc(path, normalize.Apply(content, edits)); err != nil {
		return 0, err
	}
	s.log.Debug("normalized document",
		zap.String("path", path),
		zap.Int("edits", len(edits)))
	return len(edits), nil
}

// NormalizeAll runs the pass over every eligible document in the
// workspace, best effort, and returns the total edit count.
func (s *Session) NormalizeAll() int {
	total := 0
	for _, path := range s.ws.Notes() {
		n, err := s.NormalizeDoc(path)
		if err != nil {
			s.log.Warn("skipping document", zap.String("path", path), zap.Error(err))
			continue
		}
		total += n
	}
	return total
}

// HandleWillSave is the save-intent hook: the document is normalized
// in place before its contents settle.
func (s *Session) HandleWillSave(path string) error {
	_, err := s.NormalizeDoc(path)
	return err
}

// HandleDidSave is the post-save hook: non-period documents go through
// the copy-on-create pass.
func (s *Session) HandleDidSave(path string) (mirror.Result, error) {
	if _, isPeriod := s.ws.PeriodDate(path); isPeriod {
		return mirror.Result{}, nil
	}
	res, err := mirror.Sync(s.ws, s.st, path, s.ws.Today())
	if err != nil {
		return res, err
	}
	if len(res.CopiedIDs) > 0 {
		s.log.Info("mirrored new tasks",
			zap.String("source", path),
			zap.Strings("ids", res.CopiedIDs))
		// The mirrored lines land in today's note without stamps;
		// normalize it so they immediately get creation dates.
		if _, err := s.NormalizeDoc(res.Target); err != nil {
			return res, err
		}
	}
	return res, nil
}

// OpenToday opens or creates today's period document. On first
// creation the rollover engine carries forward the previous day's
// uncompleted tasks, then the document is normalized.
func (s *Session) OpenToday() (journal.PeriodDoc, error) {
	today := s.ws.Today()
	doc, created, err := s.ws.EnsurePeriodDoc(today)
	if err != nil {
		return journal.PeriodDoc{}, err
	}
	if created {
		res, err := rollover.RollAll(s.ws, today)
		if err != nil {
			return doc, err
		}
		if res.Carried > 0 {
			s.log.Info("rolled tasks forward",
				zap.String("source", res.Source),
				zap.Int("carried", res.Carried))
		}
	}
	if _, err := s.NormalizeDoc(doc.Path); err != nil {
		return doc, err
	}
	return doc, nil
}

// Watch drives the event model from fsnotify until ctx is cancelled.
// Markdown writes are debounced per path; events for documents the
// session is itself rewriting are dropped. When autosave is off the
// loop only reports what a pass would change.
func (s *Session) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(s.ws.Root); err != nil {
		return err
	}
	s.log.Info("watching notes folder", zap.String("root", s.ws.Root))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			s.handleEvent(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (s *Session) handleEvent(path string) {
	if !strings.HasSuffix(strings.ToLower(path), ".md") {
		return
	}
	if filepath.Base(path) == s.ws.Config().SummaryFile {
		return
	}
	if s.Normalizing(path) {
		return
	}
	s.mu.Lock()
	last, seen := s.debounce[path]
	now := time.Now()
	s.debounce[path] = now
	s.mu.Unlock()
	if seen && now.Sub(last) < s.debounceDur {
		return
	}

	if s.ws.Config().Autosave {
		if err := s.HandleWillSave(path); err != nil {
			s.log.Warn("normalize failed", zap.String("path", path), zap.Error(err))
			return
		}
		if _, err := s.HandleDidSave(path); err != nil {
			s.log.Warn("mirror failed", zap.String("path", path), zap.Error(err))
		}
		return
	}

	content, err := s.ws.ReadDoc(path)
	if err != nil {
		return
	}
	periodDate := ""
	if d, ok := s.ws.PeriodDate(path); ok {
		periodDate = s.ws.FormatDate(d)
	}
	today := s.ws.FormatDate(s.ws.Today())
	edits := normalize.Pass(content, periodDate, today, task.NewAllocator(s.workspaceIDs()))
	if len(edits) > 0 {
		s.log.Info("document needs normalization (autosave off)",
			zap.String("path", path),
			zap.Int("edits", len(edits)))
	}
}

// RegenerateSummary rebuilds the summary document and logs any
// date-shaped files that were excluded from the scan.
func (s *Session) RegenerateSummary() (string, error) {
	path, skipped, err := summary.Regenerate(s.ws)
	for _, sk := range skipped {
		s.log.Warn("excluded from summary", zap.String("path", sk.Path), zap.String("reason", sk.Reason))
	}
	return path, err
}
