package secret

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	kerrors "email2hash/internal/errors"
)

// DefaultWordListPath is used when no word list is configured.
const DefaultWordListPath = "wordlist.txt"

// WordList holds diceware candidate words in file order.
type WordList []string

// LoadWordList reads a diceware list from path. It also returns the number
// of malformed lines that were skipped.
func LoadWordList(path string) (WordList, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open word list: %w: %w", kerrors.ErrIO, err)
	}
	defer f.Close()

	words, skipped, err := ParseWordList(f)
	if err != nil {
		return nil, skipped, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	return words, skipped, nil
}

// ParseWordList parses "<roll>\t<word>" lines. The second whitespace
// separated token of each line is the word. Blank lines are ignored; other
// lines with fewer than two tokens are skipped and counted.
func ParseWordList(r io.Reader) (words WordList, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		switch {
		case len(fields) == 0:
		case len(fields) < 2:
			skipped++
		default:
			words = append(words, fields[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("%w: %w", kerrors.ErrIO, err)
	}

	if len(words) == 0 {
		return nil, skipped, kerrors.ErrEmptyWordList
	}
	return words, skipped, nil
}

// Passphrase picks n words uniformly at random, with replacement, and joins
// them with single spaces. rnd must be a cryptographically secure source;
// nil means crypto/rand.Reader.
func (w WordList) Passphrase(n int, rnd io.Reader) (string, error) {
	if len(w) == 0 {
		return "", kerrors.ErrEmptyWordList
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	size := big.NewInt(int64(len(w)))
	picked := make([]string, n)
	for i := range picked {
		idx, err := rand.Int(rnd, size)
		if err != nil {
			return "", fmt.Errorf("failed to read random index: %w", err)
		}
		picked[i] = w[idx.Int64()]
	}
	return strings.Join(picked, " "), nil
}
