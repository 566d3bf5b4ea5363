// Package cache implements the on-disk, per-BuildConfiguration import
// cache of spec.md §4.6: a YAML file per configuration fingerprint,
// mapping each internal source file to its modification time and the
// imports last extracted from it.
//
// Cache is not safe for concurrent writers (spec.md §4.6, §5); readers
// tolerate a missing or corrupt cache file by treating the build as
// cold, per spec.md §7's recovery policy for cache errors.
package cache

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Import is one cached import record, matching extract.Edge's shape
// without importing the extract package (the cache format is a
// serialisation boundary, not a Go API).
type Import struct {
	Importer       string `yaml:"importer"`
	Imported       string `yaml:"imported"`
	LineNumber     int    `yaml:"line_number"`
	LineContents   string `yaml:"line_contents"`
	IsTypeChecking bool   `yaml:"is_type_checking"`
}

// Entry is the cached state for one internal source file.
type Entry struct {
	ModTimeNanos int64    `yaml:"mtime"`
	Imports      []Import `yaml:"imports"`
}

// Store is a loaded or about-to-be-written cache file: a mapping from
// absolute file path to its cached Entry.
type Store map[string]Entry

// Disabled reports whether dir is empty, meaning the cache is turned
// off entirely: both Load and Save become no-ops, per spec.md §4.6
// "Disabling".
func Disabled(dir string) bool {
	return dir == ""
}

// Load reads the cache file for cfg under dir. A missing file, an
// unreadable file, or one that fails to parse (e.g. from a prior
// schema) is treated as a cold cache: Load returns an empty Store,
// since none of those conditions should fail the build.
func Load(dir string, cfg Configuration) Store {
	if Disabled(dir) {
		return Store{}
	}
	data, err := os.ReadFile(path(dir, cfg))
	if err != nil {
		return Store{}
	}
	var store Store
	if err := yaml.Unmarshal(data, &store); err != nil {
		return Store{}
	}
	if store == nil {
		store = Store{}
	}
	return store
}

// Save writes store to the cache file for cfg under dir, creating dir
// if necessary. It is a no-op if the cache is disabled.
func Save(dir string, cfg Configuration, store Store) error {
	if Disabled(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(store)
	if err != nil {
		return err
	}
	return os.WriteFile(path(dir, cfg), data, 0o644)
}

func path(dir string, cfg Configuration) string {
	return filepath.Join(dir, cfg.Fingerprint()+".yaml")
}

// Fresh reports whether path's entry in the store is still valid for
// the given modification time, i.e. whether extraction can be
// skipped for it.
func (s Store) Fresh(path string, modTimeNanos int64) (Entry, bool) {
	e, ok := s[path]
	if !ok || e.ModTimeNanos != modTimeNanos {
		return Entry{}, false
	}
	return e, true
}
