// Package file implements a local filesystem-backed data source with optional
// charset decoding for legacy exports.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct {
	path     string
	encoding string
}

// NewLocal returns a Local data source bound to path. enc names the input
// charset; empty means UTF-8 passthrough.
func NewLocal(path, enc string) *Local {
	return &Local{path: path, encoding: enc}
}

// Open opens the configured path for reading. When a non-UTF-8 encoding is
// configured, the returned reader transparently decodes to UTF-8.
//
// Behavior:
//   - If the context is already canceled at the time of the call, Open
//     returns the context error immediately without touching the filesystem.
//   - Any filesystem error is wrapped with the path for context, while still
//     permitting errors.Is checks (e.g. errors.Is(err, os.ErrNotExist)).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	dec, err := decoderFor(l.encoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	if dec == nil {
		return f, nil
	}
	return &decodedFile{Reader: transform.NewReader(f, dec.NewDecoder()), f: f}, nil
}

// decodedFile pairs the decoding reader with the underlying file so Close
// releases the descriptor.
type decodedFile struct {
	io.Reader
	f *os.File
}

func (d *decodedFile) Close() error { return d.f.Close() }

// decoderFor maps an encoding name onto a charmap decoder. Nil means the
// input is already UTF-8.
func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
