package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"MandiPredict/pkg/logger"
)

// ModelEntry describes one discovered artifact. Entries are created once
// during the startup scan and never removed; only the load flags mutate.
type ModelEntry struct {
	Filename          string
	Path              string
	Commodity         string
	Market            string
	OriginalCommodity string
	OriginalMarket    string

	mu         sync.Mutex
	loaded     bool
	loadFailed bool
}

// MarkLoaded records a successful materialization.
func (e *ModelEntry) MarkLoaded() {
	e.mu.Lock()
	e.loaded = true
	e.loadFailed = false
	e.mu.Unlock()
}

// MarkLoadFailed records a failed materialization. The entry stays eligible
// for resolution; repeated load attempts will keep failing until restart.
func (e *ModelEntry) MarkLoadFailed() {
	e.mu.Lock()
	e.loadFailed = true
	e.mu.Unlock()
}

// Loaded reports whether materialization has succeeded at least once.
func (e *ModelEntry) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// LoadFailed reports whether materialization has been attempted and failed.
func (e *ModelEntry) LoadFailed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadFailed
}

// Option configures Registry.
type Option func(*Registry)

// WithExtension sets the artifact file extension to scan for.
func WithExtension(ext string) Option {
	return func(r *Registry) {
		r.ext = ext
	}
}

// WithLogger sets the registry logger.
func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// Registry indexes the model artifacts found in a directory. The index is
// built once by Scan and is structurally immutable afterwards: concurrent
// reads need no synchronization, entries mutate only their load flags.
type Registry struct {
	dir string
	ext string
	log *logger.Logger

	entries []*ModelEntry
	byName  map[string]*ModelEntry
}

// New creates a registry over the given artifact directory.
func New(dir string, opts ...Option) *Registry {
	r := &Registry{
		dir:    dir,
		ext:    ".onnx",
		log:    logger.Nop(),
		byName: make(map[string]*ModelEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scan enumerates artifacts once. Filenames that fail to parse are skipped
// with a warning. A missing directory yields an empty index, not an error.
// Entries are indexed in sorted filename order so tier resolution is
// deterministic across restarts.
func (r *Registry) Scan() error {
	if _, err := os.Stat(r.dir); os.IsNotExist(err) {
		r.log.Warn("models directory not found", logger.String("dir", r.dir))
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(r.dir, "*"+r.ext))
	if err != nil {
		return fmt.Errorf("scan %s: %w", r.dir, err)
	}
	sort.Strings(matches)

	for _, path := range matches {
		filename := filepath.Base(path)
		parsed, err := ParseArtifactName(filename, r.ext)
		if err != nil {
			r.log.Warn("skipping unparsable artifact", logger.String("filename", filename))
			continue
		}

		entry := &ModelEntry{
			Filename:          filename,
			Path:              path,
			Commodity:         parsed.Commodity,
			Market:            parsed.Market,
			OriginalCommodity: parsed.OriginalCommodity,
			OriginalMarket:    parsed.OriginalMarket,
		}
		r.entries = append(r.entries, entry)
		r.byName[filename] = entry
	}

	r.log.Info("model scan complete",
		logger.String("dir", r.dir),
		logger.Int("found", len(matches)),
		logger.Int("indexed", len(r.entries)),
	)
	return nil
}

// Len returns the number of indexed artifacts.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns the index in scan order.
func (r *Registry) Entries() []*ModelEntry {
	return r.entries
}

// Get returns the entry for a filename, or nil.
func (r *Registry) Get(filename string) *ModelEntry {
	return r.byName[filename]
}

// LoadedCount returns the number of entries materialized at least once.
func (r *Registry) LoadedCount() int {
	n := 0
	for _, e := range r.entries {
		if e.Loaded() {
			n++
		}
	}
	return n
}
