package secret

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "email2hash/internal/errors"
	"email2hash/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedReader replays canned operator input.
type scriptedReader struct {
	inputs  []string
	prompts []string
}

func (r *scriptedReader) ReadSecret(prompt string) ([]byte, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.inputs) == 0 {
		return nil, io.EOF
	}
	in := r.inputs[0]
	r.inputs = r.inputs[1:]
	return []byte(in), nil
}

func writeWordList(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordlist.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func newProvisioner(reader PasswordReader, console io.Writer) *Provisioner {
	return &Provisioner{Reader: reader, Console: console}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		confirm string
		wantErr error
	}{
		{"nine characters", "123456789", "123456789", kerrors.ErrSecretTooShort},
		{"ten characters", "1234567890", "1234567890", nil},
		{"nine multibyte characters", "ééééééééé", "ééééééééé", kerrors.ErrSecretTooShort},
		{"mismatch", "correct horse", "correct h0rse", kerrors.ErrSecretMismatch},
		{"match", "correct horse battery staple", "correct horse battery staple", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.secret), []byte(tt.confirm))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAcquireAcceptsConfirmedSecret(t *testing.T) {
	t.Setenv(EnvVar, "")
	reader := &scriptedReader{inputs: []string{"correct horse battery staple", "correct horse battery staple"}}
	var console bytes.Buffer

	got, err := newProvisioner(reader, &console).Acquire()

	require.NoError(t, err)
	assert.Equal(t, "correct horse battery staple", string(got.Value))
	assert.False(t, got.Generated)
	assert.Equal(t, []string{promptSecret, promptConfirm}, reader.prompts)
	assert.Empty(t, console.String())
}

func TestAcquireRepromptsShortSecret(t *testing.T) {
	t.Setenv(EnvVar, "")
	reader := &scriptedReader{inputs: []string{"123456789", "1234567890", "1234567890"}}
	var console bytes.Buffer

	got, err := newProvisioner(reader, &console).Acquire()

	require.NoError(t, err)
	assert.Equal(t, "1234567890", string(got.Value))
	assert.Equal(t, []string{promptSecret, promptSecret, promptConfirm}, reader.prompts)
	assert.Equal(t, msgTooShort+"\n", console.String())
}

func TestAcquireRepromptsOnMismatch(t *testing.T) {
	t.Setenv(EnvVar, "")
	reader := &scriptedReader{inputs: []string{
		"correct horse", "correct h0rse",
		"correct horse", "correct horse",
	}}
	var console bytes.Buffer

	got, err := newProvisioner(reader, &console).Acquire()

	require.NoError(t, err)
	assert.Equal(t, "correct horse", string(got.Value))
	assert.Len(t, reader.prompts, 4)
	assert.Equal(t, msgMismatch+"\n", console.String())
}

func TestAcquireGeneratesPassphraseOnEmptyInput(t *testing.T) {
	t.Setenv(EnvVar, "")
	words := []string{"alpha", "bravo", "charlie", "delta"}
	path := writeWordList(t, "11111\talpha", "11112\tbravo", "11113\tcharlie", "11114\tdelta")
	reader := &scriptedReader{inputs: []string{""}}
	var console bytes.Buffer

	p := newProvisioner(reader, &console)
	p.WordListPath = path
	got, err := p.Acquire()

	require.NoError(t, err)
	assert.True(t, got.Generated)
	picked := strings.Split(string(got.Value), " ")
	require.Len(t, picked, PassphraseWords)
	for _, w := range picked {
		assert.Contains(t, words, w)
	}
	assert.Equal(t, []string{promptSecret}, reader.prompts)
	assert.Equal(t, msgGenerating+"\n", console.String())
}

func TestAcquireWarnsAboutMalformedWordListLines(t *testing.T) {
	t.Setenv(EnvVar, "")
	path := writeWordList(t, "11111\talpha", "garbage", "11112\tbravo", "", "11113")
	var warnings bytes.Buffer

	p := newProvisioner(&scriptedReader{inputs: []string{""}}, io.Discard)
	p.WordListPath = path
	p.Logger = logger.Logger{Out: io.Discard, Err: &warnings}
	got, err := p.Acquire()

	require.NoError(t, err)
	assert.True(t, got.Generated)
	assert.Contains(t, warnings.String(), "Skipped 2 malformed lines in word list "+path)
}

func TestAcquireMissingWordList(t *testing.T) {
	t.Setenv(EnvVar, "")
	p := newProvisioner(&scriptedReader{inputs: []string{""}}, io.Discard)
	p.WordListPath = filepath.Join(t.TempDir(), "missing.txt")

	_, err := p.Acquire()

	assert.ErrorIs(t, err, kerrors.ErrIO)
}

func TestAcquireReaderError(t *testing.T) {
	t.Setenv(EnvVar, "")
	reader := &scriptedReader{}

	_, err := newProvisioner(reader, io.Discard).Acquire()

	assert.True(t, errors.Is(err, io.EOF))
}

func TestAcquireFromEnvironment(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		t.Setenv(EnvVar, "correct horse battery staple")
		reader := &scriptedReader{}

		got, err := newProvisioner(reader, io.Discard).Acquire()

		require.NoError(t, err)
		assert.Equal(t, "correct horse battery staple", string(got.Value))
		assert.False(t, got.Generated)
		assert.Empty(t, reader.prompts)
	})

	t.Run("too short", func(t *testing.T) {
		t.Setenv(EnvVar, "short")

		_, err := newProvisioner(&scriptedReader{}, io.Discard).Acquire()

		assert.ErrorIs(t, err, kerrors.ErrSecretTooShort)
	})
}

func TestSecretWipe(t *testing.T) {
	s := Secret{Value: []byte("correct horse")}
	s.Wipe()
	assert.Equal(t, make([]byte, len("correct horse")), s.Value)
}
