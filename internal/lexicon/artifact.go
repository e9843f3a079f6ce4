package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is the artifact layout understood by Load.
const SchemaVersion uint16 = 2

// ErrSchema reports an artifact that cannot be used by this build.
var ErrSchema = errors.New("unsupported lexicon artifact")

var (
	// подменяются в тестах
	xzNewReader = xz.NewReader
	xzNewWriter = xz.NewWriter
	timeNow     = time.Now
)

type artifact struct {
	Schema    uint16           `msgpack:"schema"`
	Generated string           `msgpack:"generated"`
	Words     int              `msgpack:"words"`
	Entries   map[string]Entry `msgpack:"entries"`
}

// Load reads an xz-compressed msgpack artifact. The file is closed on every
// path, including decode failures.
func Load(path string) (*Lexicon, error) {
	// #nosec G304 -- path comes from configuration
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	lex, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lex, nil
}

// Decode reads an artifact from r.
func Decode(r io.Reader) (*Lexicon, error) {
	zr, err := xzNewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xz: %w", err)
	}
	var a artifact
	if err := msgpack.NewDecoder(zr).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if a.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: schema %d, want %d", ErrSchema, a.Schema, SchemaVersion)
	}
	for key, e := range a.Entries {
		if len(e.Forms) == 0 || e.Default < 0 || e.Default >= len(e.Forms) {
			return nil, fmt.Errorf("%w: invalid entry %q", ErrSchema, key)
		}
	}
	if a.Entries == nil {
		a.Entries = make(map[string]Entry)
	}
	return &Lexicon{entries: a.Entries, words: a.Words}, nil
}

// Encode writes the lexicon as an artifact to w.
func (l *Lexicon) Encode(w io.Writer) error {
	zw, err := xzNewWriter(w)
	if err != nil {
		return fmt.Errorf("xz: %w", err)
	}
	a := artifact{
		Schema:    SchemaVersion,
		Generated: timeNow().UTC().Format(time.RFC3339),
		Words:     l.words,
		Entries:   l.entries,
	}
	enc := msgpack.NewEncoder(zw)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(&a); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("xz: %w", err)
	}
	return nil
}

// Save writes the artifact atomically: a temp file in the target directory
// is renamed over path.
func (l *Lexicon) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".lexicon-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	bw := bufio.NewWriter(tmp)
	if err := l.Encode(bw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
