package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// markdownExt lists the extensions treated as documents.
var markdownExt = map[string]bool{".md": true, ".markdown": true}

// IsMarkdown reports whether path has a Markdown extension.
func IsMarkdown(path string) bool {
	return markdownExt[strings.ToLower(filepath.Ext(path))]
}

// ListMarkdown возвращает отсортированный список всех *.md и *.markdown файлов
// под root. Скрытые каталоги (.git, .cache) пропускаются.
func ListMarkdown(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsMarkdown(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// детерминированный порядок
	sort.Strings(files)
	return files, nil
}

// Expand turns command-line arguments (files or directories) into a sorted,
// de-duplicated list of documents. An explicitly named file is kept whatever
// its extension.
func Expand(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		files, err := ListMarkdown(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	sort.Strings(out)
	return out, nil
}
