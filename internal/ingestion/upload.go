package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the largest accepted resume upload (5 MiB).
const MaxUploadBytes = 5 * 1024 * 1024

var (
	// ErrUnsupportedFormat is returned for extensions other than .pdf, .doc, .docx and .txt
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrFileTooLarge is returned for files over MaxUploadBytes
	ErrFileTooLarge = errors.New("file too large")
)

// Format is an accepted upload type, identified by extension.
type Format string

// Accepted formats
const (
	FormatPDF  Format = ".pdf"
	FormatDOC  Format = ".doc"
	FormatDOCX Format = ".docx"
	FormatTXT  Format = ".txt"
)

// Upload is a resume file read from disk.
type Upload struct {
	Filename string
	Format   Format
	Size     int64
	// Text is the file content as-is. No format-specific extraction is done.
	Text string
	// RawBinary is set for non-text formats, whose Text is raw document bytes
	// and is unlikely to be usable.
	RawBinary bool
}

// ParseFormat maps a filename to its Format (case-insensitive extension).
func ParseFormat(filename string) (Format, error) {
	switch f := Format(strings.ToLower(filepath.Ext(filename))); f {
	case FormatPDF, FormatDOC, FormatDOCX, FormatTXT:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (accepted: .pdf, .doc, .docx, .txt)", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadUpload reads a resume file, enforcing the accepted extensions and the
// 5 MiB size limit.
func ReadUpload(path string) (*Upload, error) {
	format, err := ParseFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to read file: %s is a directory", path)
	}
	if info.Size() > MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, info.Size(), MaxUploadBytes)
	}

	// The file may grow between Stat and read
	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, MaxUploadBytes)
	}

	return &Upload{
		Filename:  filepath.Base(path),
		Format:    format,
		Size:      int64(len(data)),
		Text:      string(data),
		RawBinary: format != FormatTXT,
	}, nil
}
