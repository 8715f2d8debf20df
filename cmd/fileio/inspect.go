package main

import (
	"fmt"

	fileio "github.com/goliatone/go-fileio"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the type and version of an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := a.decode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "type: %s\nversion: %s\n", envelope.Type, envelope.Version)
			return nil
		},
	}
}

func (a *app) decode(path string) (fileio.Envelope, error) {
	enc, err := a.codecFor(path)
	if err != nil {
		return fileio.Envelope{}, err
	}
	raw, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return fileio.Envelope{}, fmt.Errorf("read %s: %w", path, err)
	}
	store := fileio.NewStore(nil, fileio.WithCodec(enc), fileio.WithFs(a.fs))
	return store.Decode(raw)
}
