package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"unicode/utf8"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bom) {
		return content[len(bom):], true
	}
	return content, false
}

// Encode turns normalized content back into the on-disk form the file was
// loaded from: the BOM and CRLF line endings are restored when they were present.
func (f *File) Encode(content []byte) []byte {
	out := content
	if f.Flags&FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if f.Flags&FileHadBOM != 0 {
		out = append(append(make([]byte, 0, len(bom)+len(out)), bom...), out...)
	}
	return out
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol resolves a byte offset; the column counts runes so accented
// letters do not shift positions.
func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	if int(off) > len(content) {
		off = uint32(len(content))
	}

	// бинпоиск: находим наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi + 1 // 0-based номер строки

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}

	col := utf8.RuneCount(content[startOff:off])
	return LineCol{Line: uint32(line + 1), Col: uint32(col + 1)}
}

// LineColOf resolves a byte offset inside an arbitrary text. It is used for
// documents that were never registered in a FileSet.
func LineColOf(text string, off int) LineCol {
	if off > len(text) {
		off = len(text)
	}
	prefix := text[:off]
	line := 1
	lineStart := 0
	for i := 0; i < len(prefix); i++ {
		if prefix[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col := utf8.RuneCountInString(prefix[lineStart:])
	return LineCol{Line: uint32(line), Col: uint32(col + 1)}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных выводах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the normalized absolute form of p.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns p relative to baseDir; paths outside baseDir fall back
// to their absolute form.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := AbsolutePath(p)
	if err != nil {
		return "", err
	}
	base, err := AbsolutePath(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return abs, nil
	}
	rel = normalizePath(rel)
	if rel == ".." || len(rel) > 2 && rel[:3] == "../" {
		return abs, nil
	}
	return rel, nil
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return filepath.Base(p)
}
