// Package security rejects files that carry a source extension but are not
// hand-written source: binary assets and minified bundles.
package security

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrBinary   = errors.New("file appears to be binary")
	ErrMinified = errors.New("file appears to be minified")
)

// FileValidator inspects the head of a file.
type FileValidator struct {
	HeaderSize int64 // Bytes inspected from the start of the file
	// MinifiedLineLength is the longest line a hand-written file is expected
	// to contain. Files with a longer line are treated as bundles.
	MinifiedLineLength int
	// MinifiedAverage is the average line length above which a file is
	// treated as a bundle.
	MinifiedAverage int
}

func NewFileValidator() *FileValidator {
	return &FileValidator{
		HeaderSize:         64 * 1024,
		MinifiedLineLength: 5000,
		MinifiedAverage:    300,
	}
}

// ValidateFile reads the header of path and validates it.
func (fv *FileValidator) ValidateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, fv.HeaderSize)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read header: %w", err)
	}
	return fv.Validate(header[:n])
}

// Validate checks src, or its first HeaderSize bytes, and returns ErrBinary
// or ErrMinified (wrapped with detail) when the content is not source.
func (fv *FileValidator) Validate(src []byte) error {
	header := src
	if fv.HeaderSize > 0 && int64(len(header)) > fv.HeaderSize {
		header = header[:fv.HeaderSize]
	}
	if kind, ok := magicKind(header); ok {
		return fmt.Errorf("%w (%s signature)", ErrBinary, kind)
	}
	if isBinaryData(header) {
		return ErrBinary
	}
	if longest, avg := lineStats(header); longest > fv.MinifiedLineLength || avg > fv.MinifiedAverage {
		return fmt.Errorf("%w (longest line %d bytes, average %d)", ErrMinified, longest, avg)
	}
	return nil
}

var signatures = []struct {
	kind  string
	magic []byte
}{
	{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{"jpeg", []byte{0xFF, 0xD8, 0xFF}},
	{"gif", []byte("GIF8")},
	{"pdf", []byte("%PDF")},
	{"zip", []byte{0x50, 0x4B, 0x03, 0x04}},
	{"gzip", []byte{0x1F, 0x8B}},
	{"wasm", []byte{0x00, 0x61, 0x73, 0x6D}},
}

func magicKind(header []byte) (string, bool) {
	for _, s := range signatures {
		if bytes.HasPrefix(header, s.magic) {
			return s.kind, true
		}
	}
	return "", false
}

// isBinaryData reports a NUL byte or more than 30% control characters.
func isBinaryData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}
	nonPrintable := 0
	for _, b := range data {
		if b < 9 || (b > 13 && b < 32) || b == 127 {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(data)) > 0.3
}

// lineStats returns the longest and the average line length. Inputs under
// 2KB report an average of 0 so a short file with one long statement is not
// mistaken for a bundle.
func lineStats(data []byte) (longest, average int) {
	size := len(data)
	lines := 0
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		longest = max(longest, len(line))
		lines++
	}
	if lines == 0 || size < 2048 {
		return longest, 0
	}
	return longest, size / lines
}
