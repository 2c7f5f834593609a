package engine

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// GenerateSample seeds the workspace with a few days of example notes
// and one project note, then normalizes everything so the result shows
// the canonical form. Existing files are left alone.
func (s *Session) GenerateSample() ([]string, error) {
	today := s.ws.Today()
	days := []struct {
		offset int
		lines  []string
	}{
		{-2, []string{
			"- [x] Set up the notes folder +Admin",
			"- [ ] (A) Draft project outline +ProjectX",
			"- [ ] Buy milk",
		}},
		{-1, []string{
			"- [ ] (B) Review outline feedback +ProjectX",
			"- [x] Buy milk",
			"- [ ] Call the bank @phone",
		}},
		{0, []string{
			"- [ ] (A) Send outline to the team +ProjectX @email",
			"- [ ] Water plants",
		}},
	}

	var created []string
	for _, day := range days {
		d := today.AddDate(0, 0, day.offset)
		doc, wasNew, err := s.ws.EnsurePeriodDoc(d)
		if err != nil {
			return created, err
		}
		if !wasNew {
			continue
		}
		if err := s.ws.AppendLines(doc.Path, day.lines); err != nil {
			return created, err
		}
		created = append(created, doc.Path)
	}

	projectPath := filepath.Join(s.ws.Root, "ProjectX.md")
	if _, err := s.ws.ReadDoc(projectPath); err != nil {
		content := strings.Join([]string{
			"# ProjectX",
			"",
			"Scratchpad for the project.",
			"",
			"- [ ] Collect requirements +ProjectX",
			"- [ ] Sketch architecture +ProjectX",
			"",
		}, "\n")
		if err := s.ws.WriteDoc(projectPath, content); err != nil {
			return created, err
		}
		created = append(created, projectPath)
	}

	n := s.NormalizeAll()
	s.log.Info("sample data generated",
		zap.Int("files", len(created)),
		zap.Int("normalized_lines", n))
	return created, nil
}
