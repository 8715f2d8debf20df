// Package zaplog routes migration steps and activity events to a zap logger.
package zaplog

import (
	"context"

	fileio "github.com/goliatone/go-fileio"
	"github.com/goliatone/go-fileio/pkg/activity"
	"go.uber.org/zap"
)

// MigrationLogger logs every migration step at debug level and failed steps
// at error level.
func MigrationLogger(logger *zap.Logger) fileio.MigrationLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return fileio.MigrationLoggerFunc(func(event fileio.MigrationLogEvent) {
		fields := []zap.Field{
			zap.String("file_type", event.FileType),
			zap.Stringer("from", event.From),
			zap.Stringer("to", event.To),
			zap.Duration("duration", event.Duration),
		}
		if event.Err != nil {
			logger.Error("migration step failed", append(fields, zap.Error(event.Err))...)
			return
		}
		logger.Debug("migration step applied", fields...)
	})
}

// ActivityHook logs store events at info level. It never returns an error.
func ActivityHook(logger *zap.Logger) activity.ActivityHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return activity.HookFunc(func(_ context.Context, event activity.Event) error {
		fields := []zap.Field{
			zap.String("verb", event.Verb),
			zap.String("object_type", event.ObjectType),
			zap.String("object_id", event.ObjectID),
			zap.String("channel", event.Channel),
			zap.Time("occurred_at", event.OccurredAt),
		}
		if event.ActorID != "" {
			fields = append(fields, zap.String("actor_id", event.ActorID))
		}
		for _, key := range []string{"file_type", "codec", "version", "from_version", "operation_id"} {
			if value, ok := event.Metadata[key].(string); ok && value != "" {
				fields = append(fields, zap.String(key, value))
			}
		}
		logger.Info("fileio activity", fields...)
		return nil
	})
}
