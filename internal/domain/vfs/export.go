package vfs

import (
	"archive/tar"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression selects the export stream codec.
type Compression string

const (
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// ParseCompression maps a query value to a Compression, defaulting to gzip.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gz", "gzip":
		return CompressionGzip, nil
	case "zst", "zstd":
		return CompressionZstd, nil
	default:
		return "", fmt.Errorf("unsupported compression %q", s)
	}
}

// Extension returns the archive file suffix for c.
func (c Compression) Extension() string {
	if c == CompressionZstd {
		return ".tar.zst"
	}
	return ".tar.gz"
}

// Export writes the live documents of folder as a compressed tar stream.
// Entries are named "<folder>/<name>".
func (s *Store) Export(w io.Writer, folder Folder, c Compression) (int, error) {
	var cw io.WriteCloser
	switch c {
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return 0, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		cw = zw
	default:
		cw = gzip.NewWriter(w)
	}

	tw := tar.NewWriter(cw)
	docs := s.List(folder)
	for _, doc := range docs {
		header := &tar.Header{
			Name:    string(folder) + "/" + entryName(doc.Name),
			Mode:    0o644,
			Size:    int64(len(doc.Content)),
			ModTime: doc.UpdatedAt,
		}
		if err := tw.WriteHeader(header); err != nil {
			return 0, fmt.Errorf("failed to write header for %s: %w", doc.Name, err)
		}
		if _, err := io.WriteString(tw, doc.Content); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", doc.Name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return 0, fmt.Errorf("failed to close tar: %w", err)
	}
	if err := cw.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s stream: %w", c, err)
	}
	return len(docs), nil
}

// entryName keeps a document a single archive entry.
func entryName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "." || name == ".." {
		name = "_" + name
	}
	return name
}
