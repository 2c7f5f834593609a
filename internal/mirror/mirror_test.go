package mirror

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
)

func testWorkspace(t *testing.T) *journal.Workspace {
	t.Helper()
	ws, err := journal.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, ws.Init())
	return ws
}

func writeNote(t *testing.T, ws *journal.Workspace, name, content string) string {
	t.Helper()
	path := filepath.Join(ws.Root, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var today = time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)

func TestSyncBootstrapCopiesNothing(t *testing.T) {
	ws := testWorkspace(t)
	st, err := LoadState(ws)
	require.NoError(t, err)
	path := writeNote(t, ws, "project.md", strings.Join([]string{
		"# Project",
		"- [ ] Existing one id:aa1 cd:2026-02-10",
		"- [ ] Existing two id:aa2 cd:2026-02-10",
	}, "\n"))

	res, err := Sync(ws, st, path, today)
	require.NoError(t, err)
	assert.True(t, res.Bootstrapped)
	assert.Empty(t, res.CopiedIDs)
	_, err = ws.ReadDoc(ws.PeriodPath(today))
	assert.ErrorIs(t, err, journal.ErrNotFound, "bootstrap must not create today's note")
}

func TestSyncMirrorsNewTasks(t *testing.T) {
	ws := testWorkspace(t)
	st, err := LoadState(ws)
	require.NoError(t, err)
	path := writeNote(t, ws, "project.md", "# Project\n- [ ] Existing id:aa1 cd:2026-02-10")
	_, err = Sync(ws, st, path, today)
	require.NoError(t, err)

	writeNote(t, ws, "project.md", strings.Join([]string{
		"# Project",
		"- [ ] Existing id:aa1 cd:2026-02-10",
		"- [ ] (A) Brand new +Work id:bb7 cd:2026-02-21",
	}, "\n"))

	res, err := Sync(ws, st, path, today)
	require.NoError(t, err)
	assert.Equal(t, []string{"bb7"}, res.CopiedIDs)

	target, err := ws.ReadDoc(ws.PeriodPath(today))
	require.NoError(t, err)
	assert.Contains(t, target, "- [ ] (A) Brand new +Work >[[project]] id:bb7 cd:2026-02-21",
		"mirrored copies keep their identifier and gain an origin decorator")

	source, err := ws.ReadDoc(path)
	require.NoError(t, err)
	assert.Contains(t, source, "Brand new +Work ~[[2026-02-21]] id:bb7")
	assert.NotContains(t, source, "Existing id:aa1 cd:2026-02-10 ~")
}

func TestSyncNeverCopiesTwice(t *testing.T) {
	ws := testWorkspace(t)
	st, err := LoadState(ws)
	require.NoError(t, err)
	path := writeNote(t, ws, "project.md", "# Project")
	_, err = Sync(ws, st, path, today)
	require.NoError(t, err)

	content := "# Project\n- [ ] New thing id:cc1 cd:2026-02-21"
	writeNote(t, ws, "project.md", content)
	res, err := Sync(ws, st, path, today)
	require.NoError(t, err)
	require.Len(t, res.CopiedIDs, 1)

	// Saving again, and again after a restart, copies nothing more.
	res, err = Sync(ws, st, path, today)
	require.NoError(t, err)
	assert.Empty(t, res.CopiedIDs)

	st2, err := LoadState(ws)
	require.NoError(t, err)
	assert.True(t, st2.Known("cc1"))
	assert.True(t, st2.Known("CC1"), "id comparison is case-insensitive")
	res, err = Sync(ws, st2, path, today)
	require.NoError(t, err)
	assert.Empty(t, res.CopiedIDs)

	target, err := ws.ReadDoc(ws.PeriodPath(today))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(target, "New thing"))
}

func TestSyncIgnoresPeriodDocuments(t *testing.T) {
	ws := testWorkspace(t)
	st, err := LoadState(ws)
	require.NoError(t, err)
	path := writeNote(t, ws, "2026-02-20.md", "- [ ] In a daily note id:dd1 cd:2026-02-20")
	res, err := Sync(ws, st, path, today)
	require.NoError(t, err)
	assert.False(t, res.Bootstrapped)
	assert.Empty(t, res.CopiedIDs)
}

func TestStateRoundTrip(t *testing.T) {
	ws := testWorkspace(t)
	st, err := LoadState(ws)
	require.NoError(t, err)
	st.remember("Zed1")
	st.baselined["/notes/project.md"] = true
	require.NoError(t, st.Save())

	st2, err := LoadState(ws)
	require.NoError(t, err)
	assert.True(t, st2.Known("zed1"))
	assert.True(t, st2.Baselined("/notes/project.md"))
	assert.False(t, st2.Baselined("/notes/other.md"))
}
