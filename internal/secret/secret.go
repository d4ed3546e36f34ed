package secret

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"unicode/utf8"

	kerrors "email2hash/internal/errors"
	"email2hash/internal/logger"
)

const (
	// MinLength is the minimum number of characters of a typed secret.
	MinLength = 10

	// PassphraseWords is the number of words in a generated passphrase.
	PassphraseWords = 5

	// EnvVar, when set, supplies the secret without prompting.
	EnvVar = "EMAIL2HASH_SECRET"
)

const (
	promptSecret  = "Enter the secret key (or hit [ENTER] to generate a random key): "
	promptConfirm = "Enter the same key again to confirm: "

	msgGenerating = "That's fine, I will generate a key for you and use that."
	msgTooShort   = "Please choose a secret longer than 10 characters."
	msgMismatch   = "Your secret key did not match. Let's try again."
)

// Secret is the HMAC key for one run.
type Secret struct {
	Value     []byte
	Generated bool
}

// Wipe zeroes the secret value.
func (s Secret) Wipe() {
	zeroBytes(s.Value)
}

// PasswordReader reads one line of input without echoing it.
type PasswordReader interface {
	ReadSecret(prompt string) ([]byte, error)
}

// Provisioner acquires the secret interactively.
type Provisioner struct {
	// Reader prompts the operator; see Terminal.
	Reader PasswordReader

	// WordListPath locates the diceware list used for generated passphrases.
	WordListPath string

	// Console receives operator-facing messages. Defaults to os.Stderr.
	Console io.Writer

	// Rand is the entropy source for passphrase generation. Defaults to
	// crypto/rand.Reader.
	Rand io.Reader

	Logger logger.Logger
}

// Acquire returns the secret for this run. An empty entry generates a
// passphrase; a short entry or a failed confirmation prompts again, without
// limit. If EnvVar is set it is used directly and must satisfy MinLength.
func (p *Provisioner) Acquire() (Secret, error) {
	if env := os.Getenv(EnvVar); env != "" {
		value := []byte(env)
		if err := checkLength(value); err != nil {
			return Secret{}, fmt.Errorf("%s: %w", EnvVar, err)
		}
		return Secret{Value: value}, nil
	}

	for {
		candidate, err := p.Reader.ReadSecret(promptSecret)
		if err != nil {
			return Secret{}, fmt.Errorf("failed to read secret: %w", err)
		}

		if len(candidate) == 0 {
			p.say(msgGenerating)
			return p.generate()
		}

		if err := checkLength(candidate); err != nil {
			zeroBytes(candidate)
			p.say(msgTooShort)
			continue
		}

		confirm, err := p.Reader.ReadSecret(promptConfirm)
		if err != nil {
			zeroBytes(candidate)
			return Secret{}, fmt.Errorf("failed to read secret confirmation: %w", err)
		}

		err = Validate(candidate, confirm)
		zeroBytes(confirm)
		switch {
		case err == nil:
			return Secret{Value: candidate}, nil
		case errors.Is(err, kerrors.ErrSecretMismatch):
			p.say(msgMismatch)
		default:
			p.say(msgTooShort)
		}
		zeroBytes(candidate)
	}
}

func (p *Provisioner) generate() (Secret, error) {
	path := p.WordListPath
	if path == "" {
		path = DefaultWordListPath
	}

	words, skipped, err := LoadWordList(path)
	if err != nil {
		return Secret{}, err
	}
	if skipped > 0 {
		p.Logger.Warnf("Skipped %d malformed lines in word list %s", skipped, path)
	}
	p.Logger.Debugf("Loaded %d words from %s", len(words), path)

	phrase, err := words.Passphrase(PassphraseWords, p.Rand)
	if err != nil {
		return Secret{}, fmt.Errorf("failed to generate passphrase: %w", err)
	}
	return Secret{Value: []byte(phrase), Generated: true}, nil
}

func (p *Provisioner) say(msg string) {
	w := p.Console
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, msg)
}

// Validate checks a typed secret and its confirmation. It returns
// ErrSecretTooShort or ErrSecretMismatch.
func Validate(secret, confirm []byte) error {
	if err := checkLength(secret); err != nil {
		return err
	}
	if !bytes.Equal(secret, confirm) {
		return kerrors.ErrSecretMismatch
	}
	return nil
}

// checkLength counts characters, not bytes.
func checkLength(secret []byte) error {
	if utf8.RuneCount(secret) < MinLength {
		return kerrors.ErrSecretTooShort
	}
	return nil
}

// zeroBytes overwrites a byte slice with zeros
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
