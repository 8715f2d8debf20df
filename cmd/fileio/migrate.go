package main

import (
	"errors"
	"fmt"

	fileio "github.com/goliatone/go-fileio"
	"github.com/goliatone/go-fileio/pkg/activity"
	"github.com/goliatone/go-fileio/pkg/cache"
	"github.com/goliatone/go-fileio/pkg/manifest"
	"github.com/goliatone/go-fileio/pkg/zaplog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errManifestRequired = errors.New("a manifest is required (--manifest or config manifest)")

func newMigrateCmd(a *app) *cobra.Command {
	var (
		fileType string
		write    bool
	)
	cmd := &cobra.Command{
		Use:   "migrate FILE",
		Short: "Upgrade an envelope to the application version",
		Long: `Upgrade an envelope to the application version using the migrations
declared in the manifest. The upgraded envelope is printed unless --write is
given, in which case FILE is replaced atomically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if fileType == "" {
				envelope, err := a.decode(path)
				if err != nil {
					return err
				}
				fileType = envelope.Type
			}

			registry, err := a.registry()
			if err != nil {
				return err
			}
			store, err := a.store(registry, path)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			data, err := store.LoadFile(ctx, fileType, path)
			if err != nil {
				return err
			}
			if write {
				version, err := store.AppVersion()
				if err != nil {
					return err
				}
				if err := store.SaveFile(ctx, fileType, data, path); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s: %s upgraded to %s\n", path, fileType, version)
				return nil
			}
			raw, err := store.Save(fileType, data)
			if err != nil {
				return err
			}
			_, err = a.out.Write(raw)
			return err
		},
	}
	cmd.Flags().StringVarP(&fileType, "type", "t", "", "expected file type (defaults to the envelope type)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite FILE in place")
	return cmd
}

func (a *app) loadManifest() (*manifest.Manifest, error) {
	if a.cfg.Manifest == "" {
		return nil, errManifestRequired
	}
	return manifest.LoadFile(a.fs, a.cfg.Manifest)
}

func (a *app) registry() (*fileio.Registry, error) {
	m, err := a.loadManifest()
	if err != nil {
		return nil, err
	}
	return a.registryFor(m)
}

// registryFor compiles every manifest migration into a fresh registry.
func (a *app) registryFor(m *manifest.Manifest) (*fileio.Registry, error) {
	programs, err := cache.New(0)
	if err != nil {
		return nil, err
	}
	registry := fileio.NewRegistry(fileio.WithMigrationLogger(zaplog.MigrationLogger(a.logger)))
	if err := m.Apply(registry, manifest.DefaultEngines(programs)); err != nil {
		return nil, err
	}
	return registry, nil
}

func (a *app) store(registry *fileio.Registry, path string) (*fileio.Store, error) {
	opts, err := a.cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	enc, err := a.codecFor(path)
	if err != nil {
		return nil, err
	}
	store := fileio.NewStore(registry, append(opts,
		fileio.WithCodec(enc),
		fileio.WithFs(a.fs),
		fileio.WithActivityHooks(activity.Hooks{zaplog.ActivityHook(a.logger)}),
		fileio.WithHookErrorHandler(func(err error) {
			a.logger.Warn("activity hook failed", zap.Error(err))
		}),
	)...)
	if _, err := store.AppVersion(); err != nil {
		return nil, fmt.Errorf("%w (use --app-version or config app_version)", err)
	}
	return store, nil
}
