// Package mirror implements copy-on-create: tasks authored in
// arbitrary notes are mirrored into the current daily note exactly
// once, tracked by a small piece of workspace-durable state.
package mirror

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
)

const stateFileName = "state.json"

// State is the synchronization state: which task identifiers have
// already been seen by the mirror engine, and which non-period
// documents have had their baseline captured. Baseline identifiers are
// folded into the known-id set, so "already known" is a single lookup
// that survives restarts. Appended on every mirroring event, never
// pruned.
type State struct {
	known     map[string]bool
	baselined map[string]bool
	path      string
}

type stateFile struct {
	CopiedIDs []string `json:"copied_ids"`
	Baselined []string `json:"baselined"`
}

// LoadState reads the workspace's synchronization state, starting
// empty when none has been written yet.
func LoadState(ws *journal.Workspace) (*State, error) {
	st := &State{
		known:     map[string]bool{},
		baselined: map[string]bool{},
		path:      filepath.Join(ws.StateDir(), stateFileName),
	}
	b, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return st, nil
		}
		return nil, err
	}
	var f stateFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	for _, id := range f.CopiedIDs {
		st.known[strings.ToLower(id)] = true
	}
	for _, p := range f.Baselined {
		st.baselined[p] = true
	}
	return st, nil
}

// Save persists the state atomically. Last writer wins; there is no
// cross-process locking beyond the event loop's natural serialization.
func (s *State) Save() error {
	f := stateFile{
		CopiedIDs: sortedKeys(s.known),
		Baselined: sortedKeys(s.baselined),
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Known reports whether an identifier has been seen (baselined or
// copied). Comparison is case-insensitive, matching the allocator.
func (s *State) Known(id string) bool {
	return s.known[strings.ToLower(id)]
}

func (s *State) remember(id string) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id != "" {
		s.known[id] = true
	}
}

// Baselined reports whether a document's pre-existing tasks have been
// captured.
func (s *State) Baselined(path string) bool {
	return s.baselined[path]
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
