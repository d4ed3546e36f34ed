package errors

import (
	"errors"
	"fmt"
)

// Input errors are unrecoverable; the user has to fix the file or the path.
var (
	// ErrSchema indicates the input does not have the expected layout.
	ErrSchema = errors.New("schema error")

	// ErrMissingEmailColumn indicates the header has no field named "email".
	ErrMissingEmailColumn = fmt.Errorf("%w: missing email column", ErrSchema)

	// ErrRowTooShort indicates a data row has no field at the email column index.
	ErrRowTooShort = fmt.Errorf("%w: row has no email field", ErrSchema)

	// ErrIO indicates a file could not be opened, read or written.
	ErrIO = errors.New("i/o error")
)

// Secret errors are recovered by re-prompting.
var (
	// ErrSecretTooShort indicates the secret is below the minimum length.
	ErrSecretTooShort = errors.New("secret is too short")

	// ErrSecretMismatch indicates the confirmation differs from the first entry.
	ErrSecretMismatch = errors.New("secret confirmation does not match")

	// ErrEmptyWordList indicates the word list did not contain a single word.
	ErrEmptyWordList = errors.New("word list is empty")
)

// ErrOverwriteDeclined indicates the operator refused to overwrite the output.
var ErrOverwriteDeclined = errors.New("overwrite declined")
