// Package frame implements the frame composer (spec.md §4.10, C10):
// loading a skeleton template and streaming it out interleaved with
// generator output at "-->marker" sentinels.
package frame

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed Parser.frame
var defaultFrame string

// Frame holds a loaded skeleton template and a read cursor into it.
type Frame struct {
	text string
	pos  int
}

// Load reads a frame template from disk. If path is empty, the
// embedded default template ships with this module (SPEC_FULL.md §6)
// so generation works with no external frame file required.
func Load(path string) (*Frame, error) {
	if path == "" {
		return &Frame{text: defaultFrame}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open frame %q: %w", path, err)
	}
	return &Frame{text: string(data)}, nil
}

// CopyFramePart streams characters from the current position up to but
// not including the next occurrence of marker, then advances the
// cursor past the marker itself. marker == "" copies the remainder of
// the template.
func (f *Frame) CopyFramePart(w io.Writer, marker string) error {
	if marker == "" {
		io.WriteString(w, f.text[f.pos:])
		f.pos = len(f.text)
		return nil
	}
	idx := strings.Index(f.text[f.pos:], marker)
	if idx < 0 {
		return fmt.Errorf("frame marker %q not found", marker)
	}
	io.WriteString(w, f.text[f.pos:f.pos+idx])
	f.pos += idx + len(marker)
	return nil
}

// SkipFramePart advances past the next occurrence of marker without
// emitting the text before it.
func (f *Frame) SkipFramePart(marker string) error {
	idx := strings.Index(f.text[f.pos:], marker)
	if idx < 0 {
		return fmt.Errorf("frame marker %q not found", marker)
	}
	f.pos += idx + len(marker)
	return nil
}
