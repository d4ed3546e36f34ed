package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	kerrors "email2hash/internal/errors"
)

const (
	// Delimiter separates fields. Quoting is not supported.
	Delimiter = ","

	// EmailColumn is the header field that holds the addresses.
	EmailColumn = "email"

	bufferSize    = 1024 * 1024 // 1MB
	byteOrderMark = "\uFEFF"
)

// Transform streams data rows once the header has been resolved.
type Transform struct {
	reader *bufio.Reader
	column int
	hasher *Hasher
}

// NewTransform reads the header line from in and locates the email column.
// It returns ErrMissingEmailColumn when the header has no "email" field.
func NewTransform(in io.Reader, secret []byte) (*Transform, error) {
	reader := bufio.NewReaderSize(in, bufferSize)

	header, _, err := readLine(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header = strings.TrimPrefix(header, byteOrderMark)

	column := EmailColumnIndex(header)
	if column < 0 {
		return nil, kerrors.ErrMissingEmailColumn
	}

	return &Transform{
		reader: reader,
		column: column,
		hasher: NewHasher(secret),
	}, nil
}

// WriteTo hashes every remaining row and writes "<n>,<digest>\n" lines to
// out. It returns the number of rows written. Rows hashed before an error
// are still flushed to out.
func (t *Transform) WriteTo(out io.Writer) (count int, err error) {
	writer := bufio.NewWriterSize(out, bufferSize)
	defer func() {
		if ferr := writer.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to flush output: %w: %w", kerrors.ErrIO, ferr)
		}
	}()

	line := make([]byte, 0, 32+DigestHexLen)
	for {
		row, ok, err := readLine(t.reader)
		if err != nil {
			return count, fmt.Errorf("failed to read row %d: %w", count+1, err)
		}
		if !ok {
			break
		}

		email, found := field(row, t.column)
		if !found {
			return count, fmt.Errorf("%w (data row %d)", kerrors.ErrRowTooShort, count+1)
		}

		count++
		line = strconv.AppendInt(line[:0], int64(count), 10)
		line = append(line, Delimiter...)
		line = t.hasher.AppendHex(line, strings.TrimSpace(email))
		line = append(line, '\n')

		if _, err := writer.Write(line); err != nil {
			return count, fmt.Errorf("failed to write row %d: %w: %w", count, kerrors.ErrIO, err)
		}
	}

	return count, nil
}

// Run hashes the email column of in and writes the records to out.
func Run(in io.Reader, out io.Writer, secret []byte) (int, error) {
	t, err := NewTransform(in, secret)
	if err != nil {
		return 0, err
	}
	return t.WriteTo(out)
}

// HashFile hashes inPath into outPath. The output file is only created once
// the header has been validated, so a schema error leaves no output behind.
func HashFile(inPath, outPath string, secret []byte) (int, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input: %w: %w", kerrors.ErrIO, err)
	}
	defer in.Close()

	if err := checkDistinct(in, outPath); err != nil {
		return 0, err
	}

	t, err := NewTransform(in, secret)
	if err != nil {
		return 0, err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output: %w: %w", kerrors.ErrIO, err)
	}

	count, err := t.WriteTo(out)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close output: %w: %w", kerrors.ErrIO, cerr)
	}
	return count, err
}

// EmailColumnIndex returns the position of the first header field exactly
// equal to "email", or -1.
func EmailColumnIndex(header string) int {
	for i, name := range strings.Split(header, Delimiter) {
		if name == EmailColumn {
			return i
		}
	}
	return -1
}

// checkDistinct refuses to truncate the input by writing over it.
func checkDistinct(in *os.File, outPath string) error {
	inInfo, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat input: %w: %w", kerrors.ErrIO, err)
	}
	outInfo, err := os.Stat(outPath)
	if err != nil {
		return nil
	}
	if os.SameFile(inInfo, outInfo) {
		return fmt.Errorf("%w: output %s is the input file", kerrors.ErrIO, outPath)
	}
	return nil
}

// field returns the n-th comma separated field of row.
func field(row string, n int) (string, bool) {
	for i := 0; i < n; i++ {
		idx := strings.Index(row, Delimiter)
		if idx < 0 {
			return "", false
		}
		row = row[idx+len(Delimiter):]
	}
	if idx := strings.Index(row, Delimiter); idx >= 0 {
		row = row[:idx]
	}
	return row, true
}

// readLine returns the next line without its terminator. ok is false at the
// end of input. A last line without a trailing newline is still returned.
func readLine(r *bufio.Reader) (line string, ok bool, err error) {
	line, err = r.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", kerrors.ErrIO, err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}
