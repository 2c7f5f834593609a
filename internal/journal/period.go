package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// The two recognized filename date formats. The active one is a
// workspace-wide setting; both are accepted on read so a workspace can
// switch formats without renaming history.
const (
	DateFormatHyphen = "yyyy-mm-dd"
	DateFormatDigits = "yyyymmdd"

	layoutHyphen = "2006-01-02"
	layoutDigits = "20060102"
)

var (
	hyphenShapeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	digitsShapeRe = regexp.MustCompile(`^\d{8}$`)
)

func layoutFor(format string) (string, error) {
	switch format {
	case DateFormatHyphen:
		return layoutHyphen, nil
	case DateFormatDigits:
		return layoutDigits, nil
	default:
		return "", fmt.Errorf("%w: date format %q (want %s or %s)",
			ErrInvalid, format, DateFormatHyphen, DateFormatDigits)
	}
}

// FormatDate renders a date in the workspace's active format.
func (w *Workspace) FormatDate(d time.Time) string {
	layout, err := layoutFor(w.cfg.DateFormat)
	if err != nil {
		layout = layoutHyphen
	}
	return d.Format(layout)
}

// PeriodDoc is a document whose identity is a calendar date.
type PeriodDoc struct {
	Date time.Time
	Path string
}

// Stem is the filename without extension, which doubles as the
// document's display name in decorators and back-references.
func (p PeriodDoc) Stem() string {
	return docStem(p.Path)
}

// SkippedFile records a file that looked like a period document but
// whose date stamp did not parse. These are excluded from the eligible
// set and reported instead of silently dropped.
type SkippedFile struct {
	Path   string
	Reason string
}

// ParsePeriodStem interprets a filename stem as a period date. Either
// recognized format is accepted. The second return distinguishes "not
// date-shaped at all" (an ordinary note) from a parse result.
func ParsePeriodStem(stem string) (time.Time, bool) {
	if hyphenShapeRe.MatchString(stem) {
		if d, err := time.Parse(layoutHyphen, stem); err == nil {
			return d, true
		}
		return time.Time{}, false
	}
	if digitsShapeRe.MatchString(stem) {
		if d, err := time.Parse(layoutDigits, stem); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func dateShaped(stem string) bool {
	return hyphenShapeRe.MatchString(stem) || digitsShapeRe.MatchString(stem)
}

func docStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PeriodPath is the on-disk location of the period document for d.
func (w *Workspace) PeriodPath(d time.Time) string {
	return filepath.Join(w.Root, w.FormatDate(d)+".md")
}

// PeriodDate reports whether path names a period document and, if so,
// its date.
func (w *Workspace) PeriodDate(path string) (time.Time, bool) {
	if filepath.Dir(path) != filepath.Clean(w.Root) {
		return time.Time{}, false
	}
	return ParsePeriodStem(docStem(path))
}

// PeriodDocs lists every period document in the workspace, sorted by
// date ascending, together with the date-shaped files whose stamps did
// not parse. The listing is best effort: an unreadable folder yields
// an empty set.
func (w *Workspace) PeriodDocs() ([]PeriodDoc, []SkippedFile) {
	entries, err := os.ReadDir(w.Root)
	if err != nil {
		return nil, nil
	}
	var docs []PeriodDoc
	var skipped []SkippedFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
			continue
		}
		stem := docStem(e.Name())
		if !dateShaped(stem) {
			continue
		}
		path := filepath.Join(w.Root, e.Name())
		d, ok := ParsePeriodStem(stem)
		if !ok {
			skipped = append(skipped, SkippedFile{Path: path, Reason: "invalid date stamp"})
			continue
		}
		docs = append(docs, PeriodDoc{Date: d, Path: path})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Date.Before(docs[j].Date) })
	return docs, skipped
}

// LatestBefore finds the most recently dated period document strictly
// before target. The second return is false when no prior document
// exists.
func (w *Workspace) LatestBefore(target time.Time) (PeriodDoc, bool) {
	docs, _ := w.PeriodDocs()
	for i := len(docs) - 1; i >= 0; i-- {
		if docs[i].Date.Before(target) {
			return docs[i], true
		}
	}
	return PeriodDoc{}, false
}

// EnsurePeriodDoc opens or creates the period document for d. The
// second return reports whether the file was created by this call,
// which is what gates rollover-on-first-creation.
func (w *Workspace) EnsurePeriodDoc(d time.Time) (PeriodDoc, bool, error) {
	doc := PeriodDoc{Date: d, Path: w.PeriodPath(d)}
	if _, err := os.Stat(doc.Path); err == nil {
		return doc, false, nil
	}
	content := "# " + w.FormatDate(d) + "\n\n"
	if err := w.WriteDoc(doc.Path, content); err != nil {
		return PeriodDoc{}, false, err
	}
	return doc, true, nil
}
