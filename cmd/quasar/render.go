package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quasar-dev/quasar/internal/config"
	"github.com/quasar-dev/quasar/internal/demo"
	"github.com/quasar-dev/quasar/internal/errors"
)

func renderCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "render [app]",
		Short: "Print a demo app's rendered markup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*dir)
			if err != nil {
				return err
			}
			d, err := loadDemo(cfg, args)
			if err != nil {
				return err
			}
			markup, err := d.Snapshot(demoOptions(cmd, cfg)...)
			if err != nil {
				return errors.FromError(err, "Q003")
			}
			fmt.Fprint(cmd.OutOrStdout(), markup)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the demo apps",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range demo.Names() {
				d, _ := demo.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, d.Title)
			}
		},
	}
}
