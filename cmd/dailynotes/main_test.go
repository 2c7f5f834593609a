package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotesFolderResolution(t *testing.T) {
	t.Setenv("DAILYNOTES_FOLDER", "")

	orig := flagFolder
	defer func() { flagFolder = orig }()

	flagFolder = "/tmp/notes"
	assert.Equal(t, "/tmp/notes", notesFolder())

	flagFolder = ""
	t.Setenv("DAILYNOTES_FOLDER", "/srv/notes")
	assert.Equal(t, "/srv/notes", notesFolder())

	t.Setenv("DAILYNOTES_FOLDER", "")
	assert.Equal(t, "DailyNotes", filepath.Base(notesFolder()))
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"init", "config", "today", "open", "roll", "roll-line",
		"normalize", "summary", "heading", "sample", "watch",
	}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "command %q not registered", name)
	}
}
