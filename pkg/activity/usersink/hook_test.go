package usersink_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-fileio/pkg/activity"
	"github.com/goliatone/go-fileio/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	userID := uuid.New()
	tenantID := uuid.New()

	event := activity.BuildMigratedEvent(activity.FileEventInput{
		ActorID:     actorID.String(),
		UserID:      userID.String(),
		TenantID:    tenantID.String(),
		Channel:     "fileio",
		FileType:    "config",
		Path:        "/home/u/.local/share/app/config.yaml",
		Version:     "2.0.0",
		FromVersion: "1.0.0",
		OccurredAt:  now,
	})

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID || record.UserID != userID || record.TenantID != tenantID {
		t.Fatalf("unexpected identity fields: %+v", record)
	}
	if record.Verb != activity.VerbMigrated || record.ObjectType != activity.ObjectTypeFile {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.ObjectID != "/home/u/.local/share/app/config.yaml" {
		t.Fatalf("unexpected object id %q", record.ObjectID)
	}
	if record.Channel != "fileio" {
		t.Fatalf("expected channel fileio got %q", record.Channel)
	}
	if !record.OccurredAt.Equal(now) {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["from_version"] != "1.0.0" || record.Data["file_type"] != "config" {
		t.Fatalf("expected metadata passthrough got %v", record.Data)
	}
}

func TestHookNotifyUsesDefaultActor(t *testing.T) {
	sink := &recordingSink{}
	actorID := uuid.New()
	hook := usersink.Hook{Sink: sink, ActorID: actorID.String()}

	err := hook.Notify(context.Background(), activity.BuildSavedEvent(activity.FileEventInput{FileType: "config"}))
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sink.records[0].ActorID != actorID {
		t.Fatalf("expected default actor %s got %s", actorID, sink.records[0].ActorID)
	}
	if sink.records[0].UserID != uuid.Nil {
		t.Fatalf("expected nil user id, got %s", sink.records[0].UserID)
	}
}

func TestHookNotifySkipsMissingVerb(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
}

func TestHookNotifyPropagatesSinkError(t *testing.T) {
	boom := errors.New("sink down")
	sink := &recordingSink{err: boom}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.BuildLoadedEvent(activity.FileEventInput{FileType: "config"}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if sink.records[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
}
