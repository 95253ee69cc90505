package markup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Loader resolves a filename, optionally relative to another template's
// filename, to a compiled Template -- or raises TemplateNotFound with the
// searched paths.
type Loader interface {
	Load(filename, relativeTo string) (*Template, error)
}

// TemplateNotFound is raised by a Loader when filename is absent from
// every search root.
type TemplateNotFound struct {
	Filename string
	Searched []string
	Err      error
}

func (e *TemplateNotFound) Error() string {
	return fmt.Sprintf("markup: template %q not found (searched %v)", e.Filename, e.Searched)
}

func (e *TemplateNotFound) Unwrap() error { return e.Err }

type cacheEntry struct {
	modTime time.Time
	tmpl    *Template
}

// FileLoader is the reference Loader: it reads templates from a list of
// search roots, opening, fully reading and closing each file before
// compilation begins, caching the compiled result and invalidating the
// cache entry when the file's mtime changes.
type FileLoader struct {
	Roots   []string
	HTML    bool
	Include bool // wire an XIncludeFilter over every load when true

	cache map[string]cacheEntry
}

// Load implements Loader.
func (l *FileLoader) Load(filename, relativeTo string) (*Template, error) {
	if l.cache == nil {
		l.cache = map[string]cacheEntry{}
	}

	roots := l.Roots
	if relativeTo != "" {
		roots = append([]string{filepath.Dir(relativeTo)}, roots...)
	}

	var (
		path     string
		info     os.FileInfo
		searched []string
		found    bool
	)
	for _, root := range roots {
		candidate := filepath.Join(root, filename)
		searched = append(searched, candidate)
		fi, err := os.Stat(candidate)
		if err == nil {
			path, info, found = candidate, fi, true
			break
		}
	}
	if !found {
		return nil, &TemplateNotFound{Filename: filename, Searched: searched}
	}

	if entry, ok := l.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		return entry.tmpl, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tmpl, err := parseWith(bytes.NewReader(data), path, l.HTML)
	if err != nil {
		return nil, err
	}

	if l.Include {
		inc := &XIncludeFilter{Loader: l, RelativeTo: path}
		events, err := inc.Apply(tmpl.Events)
		if err != nil {
			return nil, err
		}
		tmpl = &Template{Events: events, Filename: path}
	}

	l.cache[path] = cacheEntry{modTime: info.ModTime(), tmpl: tmpl}
	return tmpl, nil
}
