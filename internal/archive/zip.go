// Package archive compresses the hashed output into a ZIP file.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	kerrors "email2hash/internal/errors"

	"github.com/klauspost/compress/zip"
)

// Compress writes dst as a ZIP archive holding src as its only entry,
// deflated and named after the base name of src.
func Compress(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w: %w", src, kerrors.ErrIO, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w: %w", src, kerrors.ErrIO, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w: %w", dst, kerrors.ErrIO, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w: %w", dst, kerrors.ErrIO, cerr)
		}
	}()

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to build zip header: %w", err)
	}
	header.Name = filepath.Base(src)
	header.Method = zip.Deflate

	zw := zip.NewWriter(out)
	entry, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w: %w", header.Name, kerrors.ErrIO, err)
	}
	if _, err := io.Copy(entry, in); err != nil {
		return fmt.Errorf("failed to compress %s: %w: %w", src, kerrors.ErrIO, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w: %w", kerrors.ErrIO, err)
	}
	return nil
}
