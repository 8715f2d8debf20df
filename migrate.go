package fileio

import (
	"fmt"
	"time"
)

// Migrate walks the migration chain of fileType from one version to another,
// feeding each edge the output of the previous one. When from equals to the
// data is returned unchanged.
//
// A failing step aborts the whole walk. Steps already applied are not rolled
// back and nothing is retried.
func (r *Registry) Migrate(fileType string, from, to Version, data any) (any, error) {
	if !r.HasFileType(fileType) {
		return nil, r.unknownFileType(fileType)
	}

	current := from
	for current != to {
		if IsFuture(current, to) {
			return nil, fmt.Errorf("%w: %s chain moved past %s to %s", ErrNoMigrationPath, fileType, to, current)
		}
		edge, ok := r.Edge(fileType, current)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no migrations from %s (target %s)", ErrNoMigrationPath, fileType, current, to)
		}

		start := time.Now()
		next, err := runStep(edge.Migrate, data)
		err = wrapMigrationError(fileType, current, edge.To, err)
		r.migrationLogger().LogMigration(MigrationLogEvent{
			FileType: fileType,
			From:     current,
			To:       edge.To,
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			return nil, err
		}

		data = next
		current = edge.To
	}
	return data, nil
}

// runStep invokes a single migration function, turning a panic into an error.
func runStep(fn MigrationFunc, data any) (next any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			next = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(data)
}

func (r *Registry) migrationLogger() MigrationLogger {
	if r.logger != nil {
		return r.logger
	}
	return noopMigrationLogger{}
}
