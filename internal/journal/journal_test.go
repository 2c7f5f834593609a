package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, ws.Init())
	return ws
}

func TestOpenEmptyRootIsNoFolder(t *testing.T) {
	_, err := Open("  ")
	assert.ErrorIs(t, err, ErrNoFolder)
}

func TestInitAndConfigRoundTrip(t *testing.T) {
	ws := openTestWorkspace(t)
	cfg := ws.Config()
	assert.Equal(t, DateFormatHyphen, cfg.DateFormat)
	assert.Equal(t, "Task Summary.md", cfg.SummaryFile)

	cfg.DateFormat = DateFormatDigits
	cfg.Autosave = true
	require.NoError(t, ws.SaveConfig(cfg))

	reopened, err := Open(ws.Root)
	require.NoError(t, err)
	assert.Equal(t, DateFormatDigits, reopened.Config().DateFormat)
	assert.True(t, reopened.Config().Autosave)
}

func TestSaveConfigRejectsUnknownDateFormat(t *testing.T) {
	ws := openTestWorkspace(t)
	cfg := ws.Config()
	cfg.DateFormat = "dd/mm/yyyy"
	assert.ErrorIs(t, ws.SaveConfig(cfg), ErrInvalid)
}

func TestFormatDateBothFormats(t *testing.T) {
	ws := openTestWorkspace(t)
	d := time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-21", ws.FormatDate(d))

	cfg := ws.Config()
	cfg.DateFormat = DateFormatDigits
	require.NoError(t, ws.SaveConfig(cfg))
	assert.Equal(t, "20260221", ws.FormatDate(d))
	assert.Equal(t, filepath.Join(ws.Root, "20260221.md"), ws.PeriodPath(d))
}

func TestParsePeriodStem(t *testing.T) {
	cases := []struct {
		stem string
		ok   bool
	}{
		{"2026-02-21", true},
		{"20260221", true},
		{"2026-13-45", false},
		{"20261345", false},
		{"notes", false},
		{"2026-02-21-extra", false},
	}
	for _, tc := range cases {
		_, ok := ParsePeriodStem(tc.stem)
		assert.Equal(t, tc.ok, ok, "stem %q", tc.stem)
	}
}

func TestPeriodDocsSortsAndSkips(t *testing.T) {
	ws := openTestWorkspace(t)
	for _, name := range []string{"2026-02-21.md", "2026-02-19.md", "20260220.md", "2026-99-99.md", "plain.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(ws.Root, name), []byte("x\n"), 0o644))
	}
	docs, skipped := ws.PeriodDocs()
	require.Len(t, docs, 3)
	assert.Equal(t, "2026-02-19", docs[0].Stem())
	assert.Equal(t, "20260220", docs[1].Stem())
	assert.Equal(t, "2026-02-21", docs[2].Stem())
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Path, "2026-99-99.md")
}

func TestLatestBefore(t *testing.T) {
	ws := openTestWorkspace(t)
	for _, name := range []string{"2026-02-10.md", "2026-02-15.md", "2026-02-21.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(ws.Root, name), []byte("x\n"), 0o644))
	}
	doc, ok := ws.LatestBefore(time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2026-02-15", doc.Stem())

	_, ok = ws.LatestBefore(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestEnsurePeriodDoc(t *testing.T) {
	ws := openTestWorkspace(t)
	d := time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)
	doc, created, err := ws.EnsurePeriodDoc(d)
	require.NoError(t, err)
	assert.True(t, created)
	content, err := ws.ReadDoc(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, "# 2026-02-21\n\n", content)

	_, created, err = ws.EnsurePeriodDoc(d)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAppendLinesCreatesAndAppends(t *testing.T) {
	ws := openTestWorkspace(t)
	path := filepath.Join(ws.Root, "2026-02-21.md")
	require.NoError(t, ws.AppendLines(path, []string{"- [ ] one"}))
	require.NoError(t, ws.AppendLines(path, []string{"- [ ] two", "- [ ] three"}))
	content, err := ws.ReadDoc(path)
	require.NoError(t, err)
	assert.Equal(t, "- [ ] one\n- [ ] two\n- [ ] three\n", content)
}

func TestNotesExcludesSummaryAndState(t *testing.T) {
	ws := openTestWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(ws.Root, "2026-02-21.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws.Root, "ideas.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws.Root, ws.Config().SummaryFile), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws.Root, "readme.txt"), []byte("x"), 0o644))

	notes := ws.Notes()
	require.Len(t, notes, 2)
	for _, n := range notes {
		assert.NotContains(t, n, "Task Summary")
		assert.NotContains(t, n, stateDirName)
	}
}

func TestPeriodDateOnlyAtRoot(t *testing.T) {
	ws := openTestWorkspace(t)
	d, ok := ws.PeriodDate(filepath.Join(ws.Root, "2026-02-21.md"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC), d)

	_, ok = ws.PeriodDate(filepath.Join(ws.Root, "sub", "2026-02-21.md"))
	assert.False(t, ok)
	_, ok = ws.PeriodDate(filepath.Join(ws.Root, "ideas.md"))
	assert.False(t, ok)
}
