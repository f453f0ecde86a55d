// Package textsource loads paste input files as ordered line sequences.
// Files are decoded as UTF-8 with an optional byte-order mark (UTF-16
// input with a BOM is transparently decoded too), HTML files can be
// converted to markdown before splitting, and ANSI escape sequences can
// be stripped so terminal logs paste cleanly.
package textsource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dripfeedbot/dripfeed/internal/logger"
)

// Options controls how paste inputs are read.
type Options struct {
	MaxFileBytes   int64 // refuse files larger than this (0 = no limit)
	StripANSI      bool  // remove ANSI escape sequences from every line
	HTMLToMarkdown bool  // convert .html/.htm input to markdown first
}

// Reader loads and prepares paste input files.
type Reader struct {
	opts      Options
	logger    *logger.Logger
	converter *md.Converter
}

// New creates a Reader with the given options.
func New(opts Options, log *logger.Logger) *Reader {
	return &Reader{
		opts:      opts,
		logger:    log,
		converter: md.NewConverter("", true, nil),
	}
}

// ReadLines reads path and returns its lines in original order. The
// returned error wraps the underlying read/decode failure and is safe to
// show to the user.
func (r *Reader) ReadLines(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("unable to read %s: is a directory", path)
	}
	if r.opts.MaxFileBytes > 0 && info.Size() > r.opts.MaxFileBytes {
		return nil, fmt.Errorf("unable to read %s: file is %d bytes, limit is %d", path, info.Size(), r.opts.MaxFileBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	defer file.Close()

	// BOMOverride strips a UTF-8 BOM and switches to UTF-16 decoding when
	// the file starts with a UTF-16 BOM; BOM-less input passes through as
	// UTF-8.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", path, err)
	}

	text := string(data)

	if r.opts.HTMLToMarkdown && isHTMLPath(path) {
		converted, err := r.converter.ConvertString(text)
		if err != nil {
			return nil, fmt.Errorf("unable to convert %s to markdown: %w", path, err)
		}
		r.logger.Debug("converted html input to markdown",
			logger.Field{Key: "path", Value: path},
			logger.Field{Key: "input_bytes", Value: len(text)},
			logger.Field{Key: "output_bytes", Value: len(converted)})
		text = converted
	}

	if r.opts.StripANSI {
		text = stripANSI(text)
	}

	return splitLines(text), nil
}

// splitLines splits on newlines, dropping the empty element a trailing
// newline would otherwise produce. Interior empty lines are preserved.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func isHTMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}
