// Package errors provides the sentinel error values shared by email2hash.
//
// Callers match them with errors.Is. Schema errors (ErrMissingEmailColumn,
// ErrRowTooShort) also match ErrSchema, so the CLI can treat every malformed
// input the same way:
//
//	count, err := pipeline.HashFile(in, out, secret)
//	if errors.Is(err, kerrors.ErrSchema) {
//	    // the input must be fixed by the user
//	}
//
// ErrSecretTooShort and ErrSecretMismatch are recoverable: the interactive
// provisioner consumes them and prompts again.
package errors
