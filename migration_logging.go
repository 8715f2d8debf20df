package fileio

import "time"

// MigrationLogEvent describes one applied (or failed) migration step.
type MigrationLogEvent struct {
	FileType string
	From     Version
	To       Version
	Duration time.Duration
	Err      error
}

// MigrationLogger records migration steps.
type MigrationLogger interface {
	LogMigration(MigrationLogEvent)
}

// MigrationLoggerFunc adapts a function to MigrationLogger.
type MigrationLoggerFunc func(MigrationLogEvent)

// LogMigration implements MigrationLogger.
func (f MigrationLoggerFunc) LogMigration(event MigrationLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopMigrationLogger struct{}

func (noopMigrationLogger) LogMigration(MigrationLogEvent) {}
