// Package extract turns uploaded schedule documents into plain text.
// PDF extraction shells out to pdftotext through an injectable command
// runner so tests can stub it.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"schedassist/internal/domain"
)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor implements port.TextExtractor for .txt and .pdf files.
type Extractor struct {
	runner CommandRunner
}

func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates an extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// ExtractText returns the document's text content. PDF files yield
// concatenated page text via pdftotext; .txt files are read directly.
// Any other extension fails with domain.ErrUnsupportedFileType.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading text file: %w", err)
		}
		return string(data), nil

	case ".pdf":
		out, err := e.runner.Run(ctx, "pdftotext", path, "-")
		if err != nil {
			return "", fmt.Errorf("extracting pdf text: %w", err)
		}
		return string(out), nil

	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, filepath.Ext(path))
	}
}

// SupportedFilename reports whether the upload boundary accepts the
// file name. Only .pdf and .txt pass, case-insensitively.
func SupportedFilename(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}
