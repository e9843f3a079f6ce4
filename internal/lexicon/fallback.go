package lexicon

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed data/fallback.txt
var fallbackWords string

var (
	fallbackOnce sync.Once
	fallbackLex  *Lexicon
)

// Fallback returns the small built-in lexicon used when no artifact is configured.
func Fallback() *Lexicon {
	fallbackOnce.Do(func() {
		words, _ := ReadWords(strings.NewReader(fallbackWords))
		fallbackLex = Build(words)
	})
	return fallbackLex
}

// ReadWords reads one word per line; blank lines and '#' comments are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// BuildFile builds a lexicon from a word list file.
func BuildFile(path string) (*Lexicon, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Build(words), nil
}

// Open loads the artifact at path, or the fallback lexicon when path is empty.
func Open(path string) (*Lexicon, error) {
	if strings.TrimSpace(path) == "" {
		return Fallback(), nil
	}
	return Load(path)
}
