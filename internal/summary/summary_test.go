package summary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravivyas84/dailynotes-panel/internal/journal"
	"github.com/ravivyas84/dailynotes-panel/internal/task"
)

func testWorkspace(t *testing.T) *journal.Workspace {
	t.Helper()
	ws, err := journal.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, ws.Init())
	return ws
}

func writeNote(t *testing.T, ws *journal.Workspace, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(ws.Root, name), []byte(content), 0o644))
}

func entry(line, period string) Entry {
	t, ok := task.ParseLine(line)
	if !ok {
		panic("bad test line: " + line)
	}
	t.Text, t.Meta = task.DecodeMeta(t.Text)
	return Entry{Task: t, Period: period}
}

func TestRenderGroupsAndOrder(t *testing.T) {
	entries := []Entry{
		entry("- [ ] (C) Third +Work", "2026-02-19"),
		entry("- [ ] No priority +Work", "2026-02-19"),
		entry("- [ ] (A) First +Work", "2026-02-20"),
		entry("- [ ] (B) Second +Work", "2026-02-20"),
		entry("- [ ] Both worlds +Alpha +Beta", "2026-02-20"),
		entry("- [ ] Loose end", "2026-02-21"),
	}
	got := Render(entries, false)

	want := strings.Join([]string{
		"# Task Summary",
		"",
		"## +Alpha",
		"- [ ] Both worlds +Alpha +Beta ([[2026-02-20]])",
		"",
		"## +Beta",
		"- [ ] Both worlds +Alpha +Beta ([[2026-02-20]])",
		"",
		"## +Work",
		"- [ ] (A) First +Work ([[2026-02-20]])",
		"- [ ] (B) Second +Work ([[2026-02-20]])",
		"- [ ] (C) Third +Work ([[2026-02-19]])",
		"- [ ] No priority +Work ([[2026-02-19]])",
		"",
		"## Ungrouped",
		"- [ ] Loose end ([[2026-02-21]])",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rendered summary mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderStableWithinPriorityTies(t *testing.T) {
	entries := []Entry{
		entry("- [ ] (A) first seen +P", "d1"),
		entry("- [ ] (A) second seen +P", "d2"),
		entry("- [ ] (A) third seen +P", "d3"),
	}
	got := Render(entries, false)
	first := strings.Index(got, "first seen")
	second := strings.Index(got, "second seen")
	third := strings.Index(got, "third seen")
	assert.True(t, first < second && second < third, "ties preserve encounter order")
}

func TestRenderOpenOnlyFiltersCompleted(t *testing.T) {
	entries := []Entry{
		entry("- [ ] Open one +P", "d1"),
		entry("- [x] Done one +P", "d1"),
	}
	got := Render(entries, true)
	assert.Contains(t, got, "Open one")
	assert.NotContains(t, got, "Done one")

	exported := Render(entries, false)
	assert.Contains(t, exported, "Done one")
}

func TestRenderUngroupedAlwaysLast(t *testing.T) {
	entries := []Entry{
		entry("- [ ] Loose", "d1"),
		entry("- [ ] Tagged +Zzz", "d1"),
	}
	got := Render(entries, false)
	assert.Less(t, strings.Index(got, "## +Zzz"), strings.Index(got, "## Ungrouped"))
}

func TestIsGenerated(t *testing.T) {
	assert.True(t, IsGenerated(marker()+Render(nil, false)))
	assert.False(t, IsGenerated("# My notes\n- [ ] hands off\n"))
	assert.False(t, IsGenerated("---\ntitle: journal\n---\nbody\n"))
}

func TestCollectTagsProvenance(t *testing.T) {
	ws := testWorkspace(t)
	writeNote(t, ws, "2026-02-20.md", "- [ ] From the 20th id:a1 cd:2026-02-20")
	writeNote(t, ws, "2026-02-21.md", "- [ ] From the 21st id:a2 cd:2026-02-21")
	writeNote(t, ws, "notes.md", "- [ ] Not a period doc id:a3")

	entries, skipped := Collect(ws)
	require.Len(t, entries, 2)
	assert.Empty(t, skipped)
	assert.Equal(t, "2026-02-20", entries[0].Period)
	assert.Equal(t, "2026-02-21", entries[1].Period)
}

func TestCollectReportsBadDateStamps(t *testing.T) {
	ws := testWorkspace(t)
	writeNote(t, ws, "2026-13-45.md", "- [ ] Impossible date id:a1")
	entries, skipped := Collect(ws)
	assert.Empty(t, entries)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Path, "2026-13-45.md")
}

func TestRegenerateRefusesHandWrittenFile(t *testing.T) {
	ws := testWorkspace(t)
	writeNote(t, ws, ws.Config().SummaryFile, "# Precious notes\n")
	_, _, err := Regenerate(ws)
	assert.ErrorIs(t, err, ErrNotGenerated)
}

func TestRegenerateRoundTrip(t *testing.T) {
	ws := testWorkspace(t)
	writeNote(t, ws, "2026-02-20.md", "- [ ] (A) Plan week +Work id:a1 cd:2026-02-20")
	path, skipped, err := Regenerate(ws)
	require.NoError(t, err)
	assert.Empty(t, skipped)

	content, err := ws.ReadDoc(path)
	require.NoError(t, err)
	assert.True(t, IsGenerated(content))
	assert.Contains(t, content, "## +Work")
	assert.Contains(t, content, "([[2026-02-20]])")

	// Second regeneration overwrites its own output without complaint.
	_, _, err = Regenerate(ws)
	require.NoError(t, err)
}
