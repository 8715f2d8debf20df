package fileio

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MigrationFunc upgrades a payload by one edge of a migration chain.
type MigrationFunc func(data any) (any, error)

// Edge is a registered migration from one version to a newer one.
type Edge struct {
	From    Version
	To      Version
	Migrate MigrationFunc
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMigrationLogger reports every migration step to logger.
func WithMigrationLogger(logger MigrationLogger) RegistryOption {
	return func(r *Registry) {
		if logger == nil {
			r.logger = noopMigrationLogger{}
			return
		}
		r.logger = logger
	}
}

// Registry holds the known file types and the migration edges for each of
// them. A single lock covers both so lookups never observe a half-registered
// file type.
type Registry struct {
	mu         sync.RWMutex
	migrations map[string]map[Version]Edge
	logger     MigrationLogger
}

// NewRegistry constructs an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		migrations: make(map[string]map[Version]Edge),
		logger:     noopMigrationLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// RegisterFileType adds name to the catalog with an empty migration chain.
func (r *Registry) RegisterFileType(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidFileType)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.migrations == nil {
		r.migrations = make(map[string]map[Version]Edge)
	}
	if _, exists := r.migrations[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFileType, name)
	}
	r.migrations[name] = make(map[Version]Edge)
	return nil
}

// HasFileType reports whether name was registered.
func (r *Registry) HasFileType(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.migrations[name]
	return ok
}

// FileTypes returns the registered file type names sorted alphabetically.
func (r *Registry) FileTypes() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fileTypesLocked()
}

func (r *Registry) fileTypesLocked() []string {
	names := make([]string, 0, len(r.migrations))
	for name := range r.migrations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterMigration stores fn as the edge leaving from for fileType. An edge
// already registered for the same source version is replaced.
func (r *Registry) RegisterMigration(fileType string, from, to Version, fn MigrationFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	edges, ok := r.migrations[fileType]
	if !ok {
		return r.unknownFileTypeLocked(fileType)
	}
	if !from.Valid() {
		return fmt.Errorf("%w: start version %s", ErrInvalidVersion, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: end version %s", ErrInvalidVersion, to)
	}
	if fn == nil {
		return fmt.Errorf("%w: %q %s -> %s", ErrNilMigration, fileType, from, to)
	}
	if from == to {
		return fmt.Errorf("%w: %s", ErrEqualVersions, from)
	}
	if !IsFuture(to, from) {
		return fmt.Errorf("%w: %s is not newer than %s", ErrNonAdvancingMigration, to, from)
	}
	edges[from] = Edge{From: from, To: to, Migrate: fn}
	return nil
}

// Edge returns the migration leaving version for fileType.
func (r *Registry) Edge(fileType string, version Version) (Edge, bool) {
	if r == nil {
		return Edge{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	edge, ok := r.migrations[fileType][version]
	return edge, ok
}

// Migrations lists the edges registered for fileType ordered by source version.
func (r *Registry) Migrations(fileType string) []Edge {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	edges := make([]Edge, 0, len(r.migrations[fileType]))
	for _, edge := range r.migrations[fileType] {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		return Compare(edges[i].From, edges[j].From) < 0
	})
	return edges
}

func (r *Registry) unknownFileType(fileType string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.unknownFileTypeLocked(fileType)
}

func (r *Registry) unknownFileTypeLocked(fileType string) error {
	return fmt.Errorf("%w: %q is not one of the known file types (%s)",
		ErrUnknownFileType, fileType, strings.Join(r.fileTypesLocked(), ", "))
}
