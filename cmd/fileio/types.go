package main

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fileio/pkg/manifest"
	"github.com/spf13/cobra"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the file types and migrations of the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadManifest()
			if err != nil {
				return err
			}
			if _, err := a.registryFor(m); err != nil {
				return err
			}
			for _, ft := range m.Types {
				fmt.Fprintln(a.out, ft.Name)
				for _, mig := range ft.Migrations {
					engine := mig.Engine
					if engine == "" {
						engine = manifest.DefaultEngine
					}
					fmt.Fprintf(a.out, "  %s -> %s [%s] %s\n",
						mig.From.Version, mig.To.Version, engine, strings.TrimSpace(mig.Expression))
				}
			}
			return nil
		},
	}
}
