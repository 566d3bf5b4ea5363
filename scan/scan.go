// Package scan walks the filesystem beneath one or more package
// roots and yields the modules it finds, without looking at their
// contents. It is the "package scanner" of spec.md §4.4.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/mod/module"
	"golang.org/x/xerrors"
)

// sourceExt is the extension of a leaf module file. The host
// language's statement-level grammar is out of this package's scope;
// scan only needs to recognise which files are modules.
const sourceExt = ".py"

const initBasename = "__init__" + sourceExt

// Resolver locates the on-disk directory for a named root package,
// standing in for "the ambient importable-package resolution of the
// host environment" (spec.md §6 "Environment"). Callers supply their
// own implementation; importgraph never guesses at import paths.
type Resolver interface {
	Resolve(rootName string) (dir string, err error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(rootName string) (string, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(rootName string) (string, error) {
	return f(rootName)
}

// Module is one file discovered beneath a root: its fully qualified
// dotted name, absolute path, and modification time.
type Module struct {
	Name     string
	Path     string
	ModTime  time.Time
	IsPkg    bool // the file is a package's __init__.py
	Warnings []string
}

// NamespacePackageEncounteredError is returned when a root's directory
// has no __init__, no source files and no subdirectories, i.e. it is a
// pure namespace package rather than a concrete portion to scan.
type NamespacePackageEncounteredError struct {
	Root string
}

func (e *NamespacePackageEncounteredError) Error() string {
	return "namespace package encountered at root " + e.Root
}

// InvalidRootNameError is returned when a root name does not look
// like a dotted package path at all (empty, or containing characters
// that could never appear in a resolvable module name).
type InvalidRootNameError struct {
	Root string
}

func (e *InvalidRootNameError) Error() string {
	return "invalid root package name " + e.Root
}

// Scan walks every root, resolving each through resolver, and returns
// every module found beneath it, sorted by dotted name for
// deterministic builds.
func Scan(roots []string, resolver Resolver) ([]Module, error) {
	var all []Module
	for _, root := range roots {
		mods, err := scanOne(root, resolver)
		if err != nil {
			return nil, xerrors.Errorf("scan root %s: %w", root, err)
		}
		all = append(all, mods...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// looksLikePath performs a cheap sanity check that root could name a
// dotted package path, borrowing golang.org/x/mod/module's import
// path checker even though our module names use Python dotted-name
// syntax rather than Go import path syntax. Dots are turned into
// slashes before the check, so it rejects empty names and characters
// that CheckImportPath does not allow; a "/" in root is accepted.
func looksLikePath(root string) bool {
	if root == "" {
		return false
	}
	cleaned := strings.ReplaceAll(root, ".", "/")
	return module.CheckImportPath(cleaned) == nil
}

func scanOne(root string, resolver Resolver) ([]Module, error) {
	if !looksLikePath(root) {
		return nil, &InvalidRootNameError{Root: root}
	}
	dir, err := resolver.Resolve(root)
	if err != nil {
		return nil, err
	}

	entries, err := readDirSorted(dir)
	if err != nil {
		return nil, err
	}
	hasInit := containsInit(entries)
	hasSource := containsSource(entries)
	if !hasInit && !hasSource && !hasSubdirs(entries) {
		return nil, &NamespacePackageEncounteredError{Root: root}
	}

	w := &walker{root: root, rootDir: dir, visitedDirs: map[string]bool{}}
	if err := w.walk(dir); err != nil {
		return nil, err
	}
	if len(w.warnings) > 0 && len(w.out) > 0 {
		w.out[0].Warnings = append(w.out[0].Warnings, w.warnings...)
	}
	return w.out, nil
}

// walker descends a root's directory tree, following symlinked
// directories per spec.md §4.4, unlike filepath.Walk/WalkDir which
// never follow symlinks. visitedDirs records each directory's
// resolved (symlink-free) path to guard against a symlink cycle
// sending the walk into an infinite loop.
type walker struct {
	root        string
	rootDir     string
	visitedDirs map[string]bool
	out         []Module
	warnings    []string // from skipped files, attached to out[0]
}

func (w *walker) walk(dir string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if w.visitedDirs[resolved] {
		return nil
	}
	w.visitedDirs[resolved] = true

	entries, err := readDirSorted(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		isDir, err := isDirFollowingSymlinks(e, path)
		if err != nil {
			return err
		}
		if isDir {
			if err := w.walk(path); err != nil {
				return err
			}
			continue
		}
		if err := w.visitFile(path); err != nil {
			return err
		}
	}
	return nil
}

// isDirFollowingSymlinks reports whether path names a directory,
// resolving e through os.Stat when it is a symlink so that a
// symlinked directory is recognised as one rather than skipped.
func isDirFollowingSymlinks(e fs.DirEntry, path string) (bool, error) {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (w *walker) visitFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return err
	}
	name, warn, skip := moduleName(w.root, rel)
	if skip {
		if warn != "" {
			w.warnings = append(w.warnings, warn)
		}
		return nil
	}
	m := Module{
		Name:    name,
		Path:    path,
		ModTime: info.ModTime(),
		IsPkg:   filepath.Base(path) == initBasename,
	}
	if warn != "" {
		m.Warnings = append(m.Warnings, warn)
	}
	w.out = append(w.out, m)
	return nil
}

// moduleName derives the dotted module name for a file at rel
// (relative to its root's directory). It returns skip=true for
// non-source files and for files whose basename contains additional
// dots besides the final extension, which are skipped with a
// warning rather than failing the whole scan.
func moduleName(root, rel string) (name string, warning string, skip bool) {
	if filepath.Ext(rel) != sourceExt {
		return "", "", true
	}
	base := filepath.Base(rel)
	stem := strings.TrimSuffix(base, sourceExt)
	if strings.Count(stem, ".") > 0 {
		return "", "file " + rel + " has extra dots in its basename, skipping", true
	}

	dir := filepath.Dir(rel)
	segments := []string{root}
	if dir != "." {
		segments = append(segments, strings.Split(filepath.ToSlash(dir), "/")...)
	}
	if stem != "__init__" {
		segments = append(segments, stem)
	}
	return strings.Join(segments, "."), "", false
}

func readDirSorted(dir string) ([]fs.DirEntry, error) {
	entries, err := fsReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func containsInit(entries []fs.DirEntry) bool {
	for _, e := range entries {
		if !e.IsDir() && e.Name() == initBasename {
			return true
		}
	}
	return false
}

func containsSource(entries []fs.DirEntry) bool {
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), sourceExt) {
			return true
		}
	}
	return false
}

func hasSubdirs(entries []fs.DirEntry) bool {
	for _, e := range entries {
		if e.IsDir() {
			return true
		}
	}
	return false
}
