package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"shelftune"
)

// Status is the terminal state of one file's processing.
type Status int

const (
	StatusProcessed Status = iota
	StatusSkipped
	StatusErrored
)

// Result records the outcome of planning and placing a single file.
type Result struct {
	Source  string
	RelPath string
	Status  Status
	Err     error
}

// Summary aggregates per-file outcomes across a batch.
type Summary struct {
	Processed int
	Skipped   int
	Errored   int
}

// Record counts one result into the summary.
func (s *Summary) Record(r Result) {
	switch r.Status {
	case StatusProcessed:
		s.Processed++
	case StatusSkipped:
		s.Skipped++
	case StatusErrored:
		s.Errored++
	}
}

// Failed reports whether the batch should signal a non-zero exit.
func (s Summary) Failed() bool { return s.Errored > 0 }

// MetadataProvider reads the tag record a file's plan is derived from.
type MetadataProvider func(path string) (shelftune.Record, error)

// Processor plans and places music files under the library root. Files are
// handled strictly one at a time: each file's collision check sees the
// effects of all prior files' writes, which is what makes collision
// resolution correct without any cross-file coordination.
type Processor struct {
	config   Config
	library  string
	dryRun   bool
	provider MetadataProvider
	logger   *log.Logger
	report   io.Writer
}

// NewProcessor creates a new Processor instance. The report writer receives
// the per-file two-line reports and the final summary line; it is identical
// whether or not dry-run is active.
func NewProcessor(config Config, library string, dryRun bool, provider MetadataProvider, logger *log.Logger, report io.Writer) *Processor {
	if report == nil {
		report = io.Discard
	}
	return &Processor{
		config:   config,
		library:  library,
		dryRun:   dryRun,
		provider: provider,
		logger:   logger,
		report:   report,
	}
}

// ProcessDirectory plans and places every matching file under sourceDir
// sequentially. Per-file failures are counted and logged, never fatal; only a
// failure to enumerate the source tree aborts the batch.
func (p *Processor) ProcessDirectory(sourceDir string) (Summary, error) {
	files, err := shelftune.CollectFiles(sourceDir, p.config.Pattern.Extension)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to scan directory: %w", err)
	}

	var summary Summary
	for _, f := range files {
		summary.Record(p.ProcessFile(f))
	}

	fmt.Fprintf(p.report, "%d processed, %d skipped, %d errored\n",
		summary.Processed, summary.Skipped, summary.Errored)

	return summary, nil
}

// ProcessFile plans a single file and, unless dry-run is active, places it.
func (p *Processor) ProcessFile(path string) Result {
	rec, err := p.provider(path)
	if err != nil {
		return p.errored(path, "", fmt.Errorf("failed to read metadata: %w", err))
	}

	placeholders := BuildPlaceholders(rec, path, p.config.Replacements)
	rel, ok := p.config.Pattern.FormatRelative(placeholders)
	if !ok {
		p.logger.Debugf("pattern resolved to an empty path for %s, skipping", path)
		return Result{Source: path, Status: StatusSkipped}
	}

	fmt.Fprintf(p.report, "%s\n-> %s\n", filepath.Base(path), rel)

	if p.dryRun {
		return Result{Source: path, RelPath: rel, Status: StatusProcessed}
	}

	target := filepath.Join(p.library, rel)
	if filepath.Clean(path) == target {
		p.logger.Debugf("file %s already in correct location", path)
		return Result{Source: path, RelPath: rel, Status: StatusSkipped}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return p.errored(path, rel, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err))
	}

	resolved, err := ResolveTarget(target, p.config.Overwrite, fileExists)
	if err != nil {
		return p.errored(path, rel, err)
	}
	if resolved != target {
		p.logger.Infof("target exists, placing as %s", filepath.Base(resolved))
	}
	if p.config.Overwrite && fileExists(resolved) {
		if err := os.Remove(resolved); err != nil {
			return p.errored(path, rel, fmt.Errorf("failed to replace %s: %w", resolved, err))
		}
	}

	transfer := copyFile
	if p.config.Move {
		transfer = moveFile
	}
	if err := transfer(path, resolved); err != nil {
		return p.errored(path, rel, fmt.Errorf("failed to transfer file: %w", err))
	}

	return Result{Source: path, RelPath: rel, Status: StatusProcessed}
}

func (p *Processor) errored(path, rel string, err error) Result {
	p.logger.Warnf("%s: %v", path, err)
	return Result{Source: path, RelPath: rel, Status: StatusErrored, Err: err}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// copyFile copies src to dst. The destination is created exclusively, so an
// existing file is never overwritten by the transfer itself.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}

// moveFile renames src to dst, falling back to copy-then-remove when the
// rename crosses a filesystem boundary.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
