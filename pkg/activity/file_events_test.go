package activity

import "testing"

func TestBuildMigratedEventIncludesVersions(t *testing.T) {
	meta := map[string]any{"custom": "value"}
	event := BuildMigratedEvent(FileEventInput{
		ActorID:     " actor ",
		OperationID: "op-1",
		FileType:    "config",
		Path:        " /tmp/config.yaml ",
		Codec:       "yaml",
		Version:     "2.0.0",
		FromVersion: "1.0.0",
		Metadata:    meta,
	})

	if event.Verb != VerbMigrated || event.ObjectType != ObjectTypeFile {
		t.Fatalf("unexpected verb/object type: %+v", event)
	}
	if event.ObjectID != "/tmp/config.yaml" {
		t.Fatalf("expected path as object id, got %q", event.ObjectID)
	}
	if event.ActorID != "actor" {
		t.Fatalf("expected trimmed actor, got %q", event.ActorID)
	}
	for key, want := range map[string]string{
		"file_type":    "config",
		"codec":        "yaml",
		"version":      "2.0.0",
		"from_version": "1.0.0",
		"operation_id": "op-1",
		"custom":       "value",
	} {
		if event.Metadata[key] != want {
			t.Fatalf("expected metadata %s=%s, got %v", key, want, event.Metadata[key])
		}
	}
	event.Metadata["custom"] = "changed"
	if meta["custom"] != "value" {
		t.Fatalf("expected input metadata untouched")
	}
}

func TestBuildSavedEventFallsBackToFileType(t *testing.T) {
	event := BuildSavedEvent(FileEventInput{FileType: "config", Version: "1.0.0"})
	if event.Verb != VerbSaved {
		t.Fatalf("expected verb %s got %s", VerbSaved, event.Verb)
	}
	if event.ObjectID != "config" {
		t.Fatalf("expected file type as object id, got %q", event.ObjectID)
	}
	if _, ok := event.Metadata["from_version"]; ok {
		t.Fatalf("expected empty from_version to be omitted")
	}
}

func TestBuildLoadedEventWithoutIdentifiers(t *testing.T) {
	event := BuildLoadedEvent(FileEventInput{})
	if event.ObjectID != "" || event.Metadata != nil {
		t.Fatalf("expected empty object id and metadata, got %+v", event)
	}
}
