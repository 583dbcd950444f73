package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/emadjumaah/intenttext"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	maxFiles      = 100
	maxWorkers    = 4
	fileExtension = ".it"
)

// Options controls how the processor handles each file
type Options struct {
	// Parse and report diagnostics only, write no output
	CheckOnly bool
	// If true, no backup of an existing output file is created
	NoBackup bool
}

// RenderResult describes one successfully processed file
type RenderResult struct {
	Path    string
	OutPath string
	// Parser diagnostics for the file, best-effort output included
	Diagnostics []intenttext.Diagnostic
}

type processResult struct {
	Path        string
	OutPath     string
	Diagnostics []intenttext.Diagnostic
	Error       error
}

// Processor parses IntentText files and renders them to HTML
type Processor struct {
	parser *intenttext.Parser
	writer *intenttext.Writer
	backup *intenttext.BackupManager
	opts   Options
}

func NewProcessor(opts Options) *Processor {
	return &Processor{
		parser: intenttext.NewParser(),
		writer: intenttext.NewWriter(),
		backup: intenttext.NewBackupManager(),
		opts:   opts,
	}
}

// ProcessPath processes a single .it file, or every .it file under a
// directory tree.
func (p *Processor) ProcessPath(path string) ([]RenderResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return p.processDirectory(path)
	}

	result := p.processFile(path)
	if result.Error != nil {
		return nil, result.Error
	}

	return []RenderResult{{
		Path:        result.Path,
		OutPath:     result.OutPath,
		Diagnostics: result.Diagnostics,
	}}, nil
}

// findFiles walks the directory tree starting at root and returns a list of parsable files
//
// If a .git directory is found, it will be used to load .gitignore patterns.
func (p *Processor) findFiles(root string) ([]string, error) {
	var files []string
	var patterns []gitignore.Pattern

	// If .git exists, set up gitignore patterns
	if _, err := os.Stat(filepath.Join(root, ".git")); err == nil {
		// Add .git directory pattern
		patterns = append(patterns, gitignore.ParsePattern(".git/", nil))

		// Load .gitignore if it exists
		if data, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
			for _, p := range strings.Split(string(data), "\n") {
				if p = strings.TrimSpace(p); p != "" && !strings.HasPrefix(p, "#") {
					patterns = append(patterns, gitignore.ParsePattern(p, nil))
				}
			}
		}
	}

	matcher := gitignore.NewMatcher(patterns)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		pathComponents := strings.Split(relPath, string(os.PathSeparator))

		if len(patterns) > 0 {
			if matcher.Match(pathComponents, info.IsDir()) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if !info.IsDir() && strings.HasSuffix(path, fileExtension) {
			if len(files) >= maxFiles {
				return fmt.Errorf("max files limit reached (%d)", maxFiles)
			}
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", fileExtension)
	}

	return files, nil
}

func (p *Processor) processDirectory(root string) ([]RenderResult, error) {
	startTime := time.Now()
	slog.Debug("starting directory processing", "path", root)
	files, err := p.findFiles(root)
	if err != nil {
		return nil, err
	}

	slog.Debug("found files to process", "count", len(files), "duration", time.Since(startTime))

	jobs := make(chan string, len(files))
	results := make(chan processResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- p.processFile(path)
			}
		}()
	}

	for _, file := range files {
		jobs <- file
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var errors []error
	var renderResults []RenderResult

	for result := range results {
		if result.Error != nil {
			errors = append(errors, fmt.Errorf("failed to process %s: %w", result.Path, result.Error))
			slog.Debug("failed to process file", "path", result.Path, "error", result.Error)
			continue
		}

		absRoot, _ := filepath.Abs(root)
		relSource, _ := filepath.Rel(absRoot, result.Path)
		relOut, _ := filepath.Rel(absRoot, result.OutPath)

		renderResults = append(renderResults, RenderResult{
			Path:        relSource,
			OutPath:     relOut,
			Diagnostics: result.Diagnostics,
		})

		slog.Debug("file processed",
			"source", relSource,
			"output", relOut,
			"diagnostics", len(result.Diagnostics),
		)
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("encountered %d errors during processing. Please rerun with -debug to see trace", len(errors))
	}

	slog.Debug("processing completed", "duration", time.Since(startTime), "processed", len(renderResults))
	return renderResults, nil
}

func (p *Processor) processFile(path string) processResult {
	startTime := time.Now()
	var result processResult

	absPath, err := filepath.Abs(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to resolve absolute path: %w", err)
		return result
	}

	result.Path = absPath

	slog.Debug("processing file", "path", absPath)

	if !strings.HasSuffix(absPath, fileExtension) {
		result.Error = fmt.Errorf("invalid file extension, expected %s", fileExtension)
		return result
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		result.Error = fmt.Errorf("error reading file: %w", err)
		return result
	}

	doc := p.parser.ParseString(string(content))
	result.Diagnostics = doc.Diagnostics

	if p.opts.CheckOnly {
		return result
	}

	outPath := intenttext.ResolveOutputPath(absPath)
	if !p.opts.NoBackup {
		if _, err := p.backup.CreateBackupOf(outPath); err != nil {
			result.Error = fmt.Errorf("backing up output: %w", err)
			return result
		}
	}

	var buf bytes.Buffer
	if err := p.writer.Write(doc, &buf); err != nil {
		result.Error = err
		return result
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		result.Error = fmt.Errorf("writing output: %w", err)
		return result
	}

	result.OutPath = outPath
	slog.Debug("file processed",
		"path", absPath,
		"duration", time.Since(startTime))

	return result
}
