package main

import (
	"fmt"
	"io"

	"github.com/goliatone/go-fileio/pkg/codec"
	"github.com/goliatone/go-fileio/pkg/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	out    io.Writer
	errOut io.Writer
	fs     afero.Fs

	cfgFile    string
	verbose    bool
	manifest   string
	codecName  string
	appVersion string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, fs: afero.NewOsFs()}

	root := &cobra.Command{
		Use:           "fileio",
		Short:         "Inspect and upgrade versioned envelope files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log every migration step")
	flags.StringVar(&a.manifest, "manifest", "", "migration manifest (overrides config)")
	flags.StringVar(&a.codecName, "codec", "", fmt.Sprintf("envelope codec, one of %v (defaults to the file extension)", codec.Names()))
	flags.StringVar(&a.appVersion, "app-version", "", "application version to upgrade to (overrides config)")

	root.AddCommand(newInspectCmd(a), newMigrateCmd(a), newTypesCmd(a))
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.manifest != "" {
		cfg.Manifest = a.manifest
	}
	if a.appVersion != "" {
		cfg.AppVersion = a.appVersion
	}
	a.cfg = cfg

	level := zapcore.WarnLevel
	if a.verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(a.errOut),
		level,
	)
	a.logger = zap.New(core).Named("fileio")
	return nil
}

// codecFor picks the --codec flag, then the file extension, then config.
func (a *app) codecFor(path string) (codec.Codec, error) {
	if a.codecName != "" {
		return codec.ByName(a.codecName)
	}
	if c, err := codec.ForPath(path); err == nil {
		return c, nil
	}
	return a.cfg.ResolveCodec()
}
