// Package output writes the collected dataset to disk and produces the
// gzip-compressed companion artifact.
package output

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Save writes items as indented JSON to path, overwriting any existing
// file. Items marshal as a JSON array; a nil slice still produces [].
func Save(items []json.RawMessage, path string) error {
	if items == nil {
		items = []json.RawMessage{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	return nil
}

// Compress gzips the file at in to out. The compression is byte-faithful:
// decompressing out reproduces in exactly.
func Compress(in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open input %s: %w", in, err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output %s: %w", out, err)
	}
	defer dst.Close()

	gz := gzip.NewWriter(dst)
	if _, err := io.Copy(gz, src); err != nil {
		gz.Close()
		return fmt.Errorf("compress %s: %w", in, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finish compression: %w", err)
	}

	return dst.Close()
}

// Decompress is the inverse of Compress. It is not part of the scrape
// pipeline; it exists for symmetry and round-trip verification.
func Decompress(in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open input %s: %w", in, err)
	}
	defer src.Close()

	gz, err := gzip.NewReader(src)
	if err != nil {
		return fmt.Errorf("open gzip stream %s: %w", in, err)
	}
	defer gz.Close()

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output %s: %w", out, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, gz); err != nil {
		return fmt.Errorf("decompress %s: %w", in, err)
	}

	return dst.Close()
}
