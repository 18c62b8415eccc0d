package feedbackcards

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Summary reports the outcome of one batch run.
type Summary struct {
	Rows      int
	Generated int
	Skipped   int
	Failed    int

	FeedbackColumn string
	AuthorColumn   string

	// OutputDir is the absolute path cards were written to.
	OutputDir string
}

// Generator renders every row of a feedback table into a PNG card. One
// generator carries the configuration, fonts, and logger for a whole batch.
type Generator struct {
	cfg   *Config
	fonts *FontSet
	log   *zap.Logger
	pick  ColorPicker
}

// NewGenerator loads the configured fonts and prepares a batch renderer.
// A nil logger disables logging.
func NewGenerator(cfg *Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		cfg:   cfg,
		fonts: LoadFonts(cfg, log),
		log:   log,
		pick:  RandomColorPicker,
	}
}

// SetColorPicker overrides how avatar tints are chosen and returns the
// generator for chaining.
func (g *Generator) SetColorPicker(pick ColorPicker) *Generator {
	if pick != nil {
		g.pick = pick
	}
	return g
}

// Run reads the configured input table and renders it into OutputDir.
func (g *Generator) Run() (*Summary, error) {
	table, err := ReadTable(g.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	return g.RunTable(table)
}

// RunTable renders every row of an already-loaded table. Role detection runs
// once up front; each row is then rendered independently, so one bad record
// cannot stop the batch. Output files are numbered by source row, starting
// at 1, and skipped or failed rows leave gaps rather than renumbering.
func (g *Generator) RunTable(table *Table) (*Summary, error) {
	profiles := BuildProfiles(table)
	detectLog := g.log.Named("detect")
	for _, p := range profiles {
		detectLog.Debug("column profile",
			zap.String("column", p.Name),
			zap.Bool("textual", p.Textual),
			zap.Float64("avg_length", p.AvgLen))
	}
	roles, err := DetectRoles(profiles)
	if err != nil {
		return nil, err
	}
	detectLog.Info("columns detected",
		zap.String("feedback", roles.Feedback),
		zap.String("author", roles.Author))

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	outDir := g.cfg.OutputDir
	if abs, err := filepath.Abs(outDir); err == nil {
		outDir = abs
	}

	sum := &Summary{
		Rows:           len(table.Rows),
		FeedbackColumn: roles.Feedback,
		AuthorColumn:   roles.Author,
		OutputDir:      outDir,
	}
	for i, row := range table.Rows {
		rowNum := i + 1
		feedback := rawAt(row, roles.FeedbackIndex)
		if strings.TrimSpace(feedback) == "" {
			sum.Skipped++
			g.log.Debug("skipping row with blank feedback", zap.Int("row", rowNum))
			continue
		}
		author := rawAt(row, roles.AuthorIndex)
		path := filepath.Join(g.cfg.OutputDir, fmt.Sprintf("feedback_card_%d.png", rowNum))
		if err := g.renderRecord(path, feedback, author); err != nil {
			sum.Failed++
			g.log.Error("card failed", zap.Int("row", rowNum), zap.Error(err))
			continue
		}
		sum.Generated++
		g.log.Info("card generated", zap.Int("row", rowNum), zap.String("file", path))
	}
	g.log.Info("batch finished",
		zap.Int("rows", sum.Rows),
		zap.Int("generated", sum.Generated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed))
	return sum, nil
}

// renderRecord renders and writes one card. Panics are converted to errors
// so a malformed record only fails its own card.
func (g *Generator) renderRecord(path, feedback, author string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()
	img, err := g.RenderCard(feedback, author)
	if err != nil {
		return err
	}
	return writePNG(path, img)
}

func rawAt(row []Cell, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx].Raw
}
