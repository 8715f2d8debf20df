package fileio

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-fileio/pkg/activity"
	"github.com/goliatone/go-fileio/pkg/codec"
	"github.com/goliatone/go-fileio/pkg/userdir"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Store saves payloads inside versioned envelopes and upgrades older
// envelopes on load using the migrations held by its Registry.
type Store struct {
	registry *Registry
	cfg      storeConfig
	emitter  *activity.Emitter

	mu         sync.RWMutex
	appName    string
	appVersion *Version
}

// NewStore builds a Store over registry. A nil registry is replaced by an
// empty one.
func NewStore(registry *Registry, opts ...Option) *Store {
	if registry == nil {
		registry = NewRegistry()
	}
	cfg := applyStoreOptions(opts)
	if cfg.dirs == nil {
		cfg.dirs = userdir.Resolver{Fs: cfg.fs}
	}
	return &Store{
		registry:   registry,
		cfg:        cfg,
		emitter:    activity.NewEmitter(cfg.hooks, cfg.activity),
		appName:    cfg.appName,
		appVersion: cfg.appVersion,
	}
}

// Registry returns the registry the store migrates with.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Codec returns the envelope encoding in use.
func (s *Store) Codec() codec.Codec {
	return s.cfg.codec
}

// SetAppVersion sets the version stamped on saves and targeted on loads.
func (s *Store) SetAppVersion(version Version) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := version
	s.appVersion = &v
}

// AppVersion returns the configured application version.
func (s *Store) AppVersion() (Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.appVersion == nil {
		return Version{}, ErrAppVersionNotSet
	}
	return *s.appVersion, nil
}

// SetAppName sets the name used to locate per-user files.
func (s *Store) SetAppName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appName = name
}

// AppName returns the configured application name.
func (s *Store) AppName() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.appName == "" {
		return "", ErrAppNameNotSet
	}
	return s.appName, nil
}

// Save wraps data in an envelope stamped with the app version and encodes it.
func (s *Store) Save(fileType string, data any) ([]byte, error) {
	raw, version, err := s.encode(fileType, data)
	if err != nil {
		return nil, err
	}
	s.emit(context.Background(), activity.BuildSavedEvent(s.eventInput(fileType, "", version, nil)))
	return raw, nil
}

// Load decodes an envelope of fileType and returns its payload, migrated to
// the app version when the envelope is older.
func (s *Store) Load(fileType string, raw []byte) (any, error) {
	return s.load(context.Background(), fileType, raw, "")
}

// Decode parses raw into an Envelope without checking its type or version
// against the store.
func (s *Store) Decode(raw []byte) (Envelope, error) {
	doc, err := s.cfg.codec.Unmarshal(raw)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	return EnvelopeFromMap(doc)
}

func (s *Store) encode(fileType string, data any) ([]byte, Version, error) {
	if !s.registry.HasFileType(fileType) {
		return nil, Version{}, s.registry.unknownFileType(fileType)
	}
	version, err := s.AppVersion()
	if err != nil {
		return nil, Version{}, err
	}
	envelope := Envelope{Version: version, Type: fileType, Data: data}
	raw, err := s.cfg.codec.Marshal(envelope.document())
	if err != nil {
		return nil, Version{}, fmt.Errorf("fileio: encode %s envelope: %w", fileType, err)
	}
	return raw, version, nil
}

func (s *Store) load(ctx context.Context, fileType string, raw []byte, path string) (any, error) {
	if !s.registry.HasFileType(fileType) {
		return nil, s.registry.unknownFileType(fileType)
	}
	current, err := s.AppVersion()
	if err != nil {
		return nil, err
	}
	envelope, err := s.Decode(raw)
	if err != nil {
		return nil, err
	}
	if envelope.Type != fileType {
		return nil, fmt.Errorf("%w: expected %q, file is %q", ErrTypeMismatch, fileType, envelope.Type)
	}

	switch {
	case envelope.Version == current:
		s.emit(ctx, activity.BuildLoadedEvent(s.eventInput(fileType, path, current, nil)))
		return envelope.Data, nil
	case IsFuture(envelope.Version, current):
		return nil, fmt.Errorf("%w: %s data is version %s, app is version %s",
			ErrFutureVersion, fileType, envelope.Version, current)
	}

	data, err := s.registry.Migrate(fileType, envelope.Version, current, envelope.Data)
	if err != nil {
		return nil, err
	}
	from := envelope.Version
	s.emit(ctx, activity.BuildMigratedEvent(s.eventInput(fileType, path, current, &from)))
	s.emit(ctx, activity.BuildLoadedEvent(s.eventInput(fileType, path, current, &from)))
	return data, nil
}

// SaveFile saves data to path. The envelope is written to a temporary file in
// the same directory and renamed over path.
func (s *Store) SaveFile(ctx context.Context, fileType string, data any, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, version, err := s.encode(fileType, data)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.cfg.fs, path, raw); err != nil {
		return err
	}
	s.emit(ctx, activity.BuildSavedEvent(s.eventInput(fileType, path, version, nil)))
	return nil
}

// LoadFile loads and migrates the envelope stored at path.
func (s *Store) LoadFile(ctx context.Context, fileType, path string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := afero.ReadFile(s.cfg.fs, path)
	if err != nil {
		return nil, fmt.Errorf("fileio: read %s: %w", path, err)
	}
	return s.load(ctx, fileType, raw, path)
}

// UserFilePath joins filename with the per-user data directory of the app.
func (s *Store) UserFilePath(filename string) (string, error) {
	name, err := s.AppName()
	if err != nil {
		return "", err
	}
	dir, err := s.cfg.dirs.DataDir(name)
	if err != nil {
		return "", fmt.Errorf("fileio: data dir for %q: %w", name, err)
	}
	return filepath.Join(dir, filename), nil
}

// SaveUserFile saves data as filename inside the per-user data directory.
func (s *Store) SaveUserFile(ctx context.Context, fileType string, data any, filename string) error {
	path, err := s.UserFilePath(filename)
	if err != nil {
		return err
	}
	return s.SaveFile(ctx, fileType, data, path)
}

// LoadUserFile loads filename from the per-user data directory.
func (s *Store) LoadUserFile(ctx context.Context, fileType, filename string) (any, error) {
	path, err := s.UserFilePath(filename)
	if err != nil {
		return nil, err
	}
	return s.LoadFile(ctx, fileType, path)
}

func (s *Store) eventInput(fileType, path string, version Version, from *Version) activity.FileEventInput {
	input := activity.FileEventInput{
		ActorID:     s.cfg.actorID,
		OperationID: uuid.NewString(),
		FileType:    fileType,
		Path:        path,
		Codec:       s.cfg.codec.Name(),
		Version:     version.String(),
	}
	if from != nil {
		input.FromVersion = from.String()
	}
	return input
}

func (s *Store) emit(ctx context.Context, event activity.Event) {
	if !s.emitter.Enabled() {
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.cfg.onHookError(err)
	}
}

func writeFileAtomic(fs afero.Fs, path string, raw []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fileio: create %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("fileio: temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("fileio: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("fileio: close %s: %w", path, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("fileio: replace %s: %w", path, err)
	}
	return nil
}
