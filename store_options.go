package fileio

import (
	"github.com/goliatone/go-fileio/pkg/activity"
	"github.com/goliatone/go-fileio/pkg/codec"
	"github.com/spf13/afero"
)

// DirResolver returns a per-user writable directory for appName, creating it
// when missing.
type DirResolver interface {
	DataDir(appName string) (string, error)
}

// DirResolverFunc adapts a function to DirResolver.
type DirResolverFunc func(appName string) (string, error)

// DataDir implements DirResolver.
func (f DirResolverFunc) DataDir(appName string) (string, error) {
	return f(appName)
}

// Option configures a Store.
type Option func(*storeConfig)

type storeConfig struct {
	codec       codec.Codec
	fs          afero.Fs
	dirs        DirResolver
	appName     string
	appVersion  *Version
	hooks       activity.Hooks
	activity    activity.Config
	activitySet bool
	onHookError func(error)
	actorID     string
}

// WithCodec selects the envelope encoding. YAML is used when unset.
func WithCodec(c codec.Codec) Option {
	return func(cfg *storeConfig) {
		cfg.codec = c
	}
}

// WithFs sets the filesystem used by the file helpers.
func WithFs(fs afero.Fs) Option {
	return func(cfg *storeConfig) {
		cfg.fs = fs
	}
}

// WithDirResolver sets the per-user directory resolver used by
// SaveUserFile and LoadUserFile.
func WithDirResolver(dirs DirResolver) Option {
	return func(cfg *storeConfig) {
		cfg.dirs = dirs
	}
}

// WithAppName sets the application name used to locate per-user files.
func WithAppName(name string) Option {
	return func(cfg *storeConfig) {
		cfg.appName = name
	}
}

// WithAppVersion sets the version stamped on saves and targeted on loads.
func WithAppVersion(version Version) Option {
	return func(cfg *storeConfig) {
		v := version
		cfg.appVersion = &v
	}
}

// WithActivityHooks attaches hooks notified after saves, loads and
// migrations. Emission is enabled unless WithActivityConfig says otherwise.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := activity.CloneHooks(hooks)
	return func(cfg *storeConfig) {
		cfg.hooks = normalized
	}
}

// WithActivityConfig overrides the activity emitter configuration.
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *storeConfig) {
		cfg.activity = config
		cfg.activitySet = true
	}
}

// WithActivityActor sets the actor id recorded on emitted events.
func WithActivityActor(actorID string) Option {
	return func(cfg *storeConfig) {
		cfg.actorID = actorID
	}
}

// WithHookErrorHandler receives errors returned by activity hooks. Hook
// errors never fail a save or load.
func WithHookErrorHandler(fn func(error)) Option {
	return func(cfg *storeConfig) {
		cfg.onHookError = fn
	}
}

func applyStoreOptions(opts []Option) storeConfig {
	cfg := storeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.codec == nil {
		cfg.codec = codec.YAML()
	}
	if cfg.fs == nil {
		cfg.fs = afero.NewOsFs()
	}
	if !cfg.activitySet {
		cfg.activity = activity.Config{Enabled: true}
	}
	if cfg.onHookError == nil {
		cfg.onHookError = func(error) {}
	}
	return cfg
}
