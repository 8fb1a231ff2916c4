// Package scan walks a documentation source tree and produces the source
// descriptors consumed by the parser.
//
// The scanner is deliberately dumb: it decides which files are candidates
// (extension allow-list, ignore globs, dotfile policy) and reads their bytes.
// Everything content-related happens downstream. Results are ordered
// lexicographically by relative path, so scans over identical trees are
// deterministic.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/patternhq/patlas/pkg/docs"
	"github.com/patternhq/patlas/pkg/errors"
)

// DefaultExtensions is the extension allow-list applied when Options.Extensions
// is empty.
var DefaultExtensions = []string{".md"}

// Options configures a scan.
type Options struct {
	// Extensions is the allowed-extension list (with leading dots).
	// Empty means DefaultExtensions.
	Extensions []string

	// Ignore holds doublestar globs matched against the slash-separated
	// path relative to the root. Matching files and directories are
	// skipped. Version-control directories and dotfiles are always
	// skipped regardless of this list.
	Ignore []string
}

// Scan walks root and returns every candidate source file in lexicographic
// order by relative path, together with the diagnostics produced along the
// way (currently only unreadable-file warnings).
//
// A missing or unreadable root is fatal and returns an ErrCodeInvalidRoot
// error; malformed ignore globs return ErrCodeInvalidGlob. Individual
// unreadable files are skipped with a warning diagnostic.
func Scan(ctx context.Context, root string, opts Options) ([]docs.SourceFile, docs.Diagnostics, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidRoot, err, "source root %s", root)
	}
	if !info.IsDir() {
		return nil, nil, errors.New(errors.ErrCodeInvalidRoot, "source root is not a directory: %s", root)
	}

	for _, g := range opts.Ignore {
		if !doublestar.ValidatePattern(g) {
			return nil, nil, errors.New(errors.ErrCodeInvalidGlob, "invalid ignore glob: %q", g)
		}
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var (
		files docs.SourceFiles = nil
		diags docs.Diagnostics
	)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			if path == root {
				return err
			}
			rel := relSlash(root, path)
			diags = append(diags, docs.Warnf(docs.IDFromPath(rel), "", "unreadable path skipped: %v", err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel := relSlash(root, path)
		if path == root {
			return nil
		}

		if hidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ignored(rel, opts.Ignore) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !allowedExt(d.Name(), exts) {
			return nil
		}

		content, rerr := os.ReadFile(path)
		if rerr != nil {
			diags = append(diags, docs.Warnf(docs.IDFromPath(rel), "", "unreadable file skipped: %v", rerr))
			return nil
		}
		fi, _ := d.Info()
		sf := docs.SourceFile{
			Path:     path,
			Rel:      rel,
			Category: docs.CategoryFromPath(rel),
			Content:  content,
		}
		if fi != nil {
			sf.ModTime = fi.ModTime()
		}
		files = append(files, sf)
		return nil
	})
	if walkErr != nil {
		if ctx.Err() != nil {
			return nil, nil, walkErr
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidRoot, walkErr, "walk %s", root)
	}

	sort.Sort(files)
	return files, diags, nil
}

// relSlash returns path relative to root with forward slashes.
func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// hidden reports whether a basename is a dotfile or version-control entry.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ignored reports whether rel matches any of the ignore globs. Patterns are
// validated before the walk, so a match error here cannot occur.
func ignored(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}

// allowedExt reports whether name carries one of the allowed extensions.
// Comparison is case-insensitive, so README.MD is still a candidate.
func allowedExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
