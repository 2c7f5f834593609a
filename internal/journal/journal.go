// Package journal owns the notes workspace: its configuration, the
// period (daily note) documents addressed by date-formatted filenames,
// and the file I/O every engine pass goes through.
package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")
	// ErrNoFolder reports a workspace whose notes folder does not
	// exist yet. Callers surface it as an actionable condition, not a
	// fault.
	ErrNoFolder = errors.New("notes folder not configured")

	timeNow = func() time.Time { return time.Now() }
)

const (
	stateDirName   = ".dailynotes"
	configFileName = "config.yaml"
)

// Config is the workspace-wide settings surface. The engines treat it
// as opaque caller input; only the CLI writes it.
type Config struct {
	Folder      string `yaml:"folder,omitempty"`
	DateFormat  string `yaml:"date_format"`
	Autosave    bool   `yaml:"autosave"`
	SummaryFile string `yaml:"summary_file"`
}

func defaultConfig() Config {
	return Config{
		DateFormat:  DateFormatHyphen,
		Autosave:    false,
		SummaryFile: "Task Summary.md",
	}
}

type Workspace struct {
	Root string
	cfg  Config
}

// Open opens a workspace rooted at root. It does not create files
// until Init is called; a missing config file just means defaults.
func Open(root string) (*Workspace, error) {
	root = expandHome(strings.TrimSpace(root))
	if root == "" {
		return nil, ErrNoFolder
	}
	w := &Workspace{Root: root}
	if err := w.loadOrDefaultConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return w, nil
}

// Init creates the folder layout and writes the default config if none
// exists. Safe to call repeatedly.
func (w *Workspace) Init() error {
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(w.Root, stateDirName), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(w.configPath()); err == nil {
		return w.loadOrDefaultConfig()
	}
	return w.SaveConfig(w.cfg)
}

// Exists reports whether the notes folder is present on disk.
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.Root)
	return err == nil && info.IsDir()
}

func (w *Workspace) configPath() string {
	return filepath.Join(w.Root, stateDirName, configFileName)
}

// StateDir is where process-durable engine state lives.
func (w *Workspace) StateDir() string {
	return filepath.Join(w.Root, stateDirName)
}

func (w *Workspace) loadOrDefaultConfig() error {
	w.cfg = defaultConfig()
	b, err := os.ReadFile(w.configPath())
	if err != nil {
		return err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return fmt.Errorf("%w: config: %v", ErrInvalid, err)
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = DateFormatHyphen
	}
	if _, err := layoutFor(cfg.DateFormat); err != nil {
		return err
	}
	if cfg.SummaryFile == "" {
		cfg.SummaryFile = defaultConfig().SummaryFile
	}
	w.cfg = cfg
	return nil
}

func (w *Workspace) Config() Config { return w.cfg }

func (w *Workspace) SaveConfig(cfg Config) error {
	if cfg.DateFormat == "" {
		cfg.DateFormat = DateFormatHyphen
	}
	if _, err := layoutFor(cfg.DateFormat); err != nil {
		return err
	}
	if cfg.SummaryFile == "" {
		cfg.SummaryFile = defaultConfig().SummaryFile
	}
	w.cfg = cfg
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.configPath()), 0o755); err != nil {
		return err
	}
	return atomicWriteFile(w.configPath(), b, 0o644)
}

// Today returns the workspace's current date, truncated to midnight
// local time.
func (w *Workspace) Today() time.Time {
	now := timeNow()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ReadDoc reads one document. A missing file maps to ErrNotFound so
// scanning callers can degrade to "no data" for that file.
func (w *Workspace) ReadDoc(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", err
	}
	return string(b), nil
}

// WriteDoc writes a document atomically (tmp + rename).
func (w *Workspace) WriteDoc(path, content string) error {
	return atomicWriteFile(path, []byte(content), 0o644)
}

// AppendLines appends lines to a document, creating it when missing
// and keeping exactly one trailing newline.
func (w *Workspace) AppendLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	existing, err := w.ReadDoc(path)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	var b strings.Builder
	if existing != "" {
		b.WriteString(strings.TrimRight(existing, "\n"))
		b.WriteString("\n")
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return w.WriteDoc(path, b.String())
}

// Notes lists every markdown document eligible for task syntax: all
// .md files under the root except the generated summary and the state
// directory. Best effort; unreadable directories yield an empty list.
func (w *Workspace) Notes() []string {
	var out []string
	_ = filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d == nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == stateDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		if d.Name() == w.cfg.SummaryFile {
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out
}

// SummaryPath is the location of the generated summary document.
func (w *Workspace) SummaryPath() string {
	return filepath.Join(w.Root, w.cfg.SummaryFile)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", timeNow().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
