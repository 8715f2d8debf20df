package activity

import (
	"strings"
	"time"
)

// Verbs emitted by fileio stores.
const (
	VerbSaved    = "fileio.saved"
	VerbLoaded   = "fileio.loaded"
	VerbMigrated = "fileio.migrated"
)

// ObjectTypeFile is the object type of every fileio event.
const ObjectTypeFile = "fileio.file"

// FileEventInput describes the common fields of a persistence event.
type FileEventInput struct {
	ActorID     string
	UserID      string
	TenantID    string
	OperationID string
	Channel     string
	FileType    string
	Path        string
	Codec       string
	Version     string
	FromVersion string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// BuildSavedEvent describes an envelope written at input.Version.
func BuildSavedEvent(input FileEventInput) Event {
	return buildFileEvent(VerbSaved, input)
}

// BuildLoadedEvent describes an envelope read and returned at input.Version.
func BuildLoadedEvent(input FileEventInput) Event {
	return buildFileEvent(VerbLoaded, input)
}

// BuildMigratedEvent describes data upgraded from input.FromVersion to input.Version.
func BuildMigratedEvent(input FileEventInput) Event {
	return buildFileEvent(VerbMigrated, input)
}

func buildFileEvent(verb string, input FileEventInput) Event {
	metadata := cloneMap(input.Metadata)
	set := func(key, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata[key] = value
	}
	set("file_type", input.FileType)
	set("path", input.Path)
	set("codec", input.Codec)
	set("version", input.Version)
	set("from_version", input.FromVersion)
	set("operation_id", input.OperationID)

	// Path identifies the object when there is one; in-memory operations fall
	// back to the file type.
	objectID := strings.TrimSpace(input.Path)
	if objectID == "" {
		objectID = strings.TrimSpace(input.FileType)
	}
	if objectID == "" {
		objectID = strings.TrimSpace(input.OperationID)
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeFile,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
