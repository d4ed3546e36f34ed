// Package pipeline turns the email column of a delimited file into keyed
// digests, one output line per input row.
//
// The input is split on a bare comma. There is no quoting or escaping: a
// quoted field containing a comma shifts every field after it, and a row
// whose layout differs from the header is read positionally anyway. This is
// a known limitation; files must be plain comma separated values.
//
// Output lines look like
//
//	1,3f0c...e9a1
//
// where the number counts data rows from 1 and the digest is the lowercase
// hex HMAC-SHA3-256 of the trimmed email, keyed with the run secret. The
// input is streamed, so memory use does not grow with the file.
package pipeline
