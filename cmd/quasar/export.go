package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quasar-dev/quasar/internal/config"
	"github.com/quasar-dev/quasar/internal/demo"
	"github.com/quasar-dev/quasar/internal/errors"
	"github.com/quasar-dev/quasar/internal/export"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

func exportCmd(dir *string) *cobra.Command {
	var (
		out    string
		bucket string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "export [app...]",
		Short: "Export rendered demo snapshots",
		Long: `Render demo apps and write each snapshot as <app>.html.

Snapshots go to the --out directory, or to S3 when a bucket is set with
--bucket or export.bucket in quasar.yaml. S3 credentials are read from
AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.

Examples:
  quasar export todo
  quasar export --all --out=site
  quasar export --all --bucket=my-snapshots`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*dir)
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Export.Bucket = bucket
			}

			names := args
			switch {
			case all:
				names = demo.Names()
			case len(names) == 0:
				names = []string{cfg.App}
			}

			store := export.ForConfig(cfg.Export, out, os.Getenv)
			for _, name := range names {
				d, err := loadDemo(cfg, []string{name})
				if err != nil {
					return err
				}
				markup, err := d.Snapshot(demoOptions(cmd, cfg)...)
				if err != nil {
					return errors.FromError(err, "Q003")
				}
				where, err := store.Put(cmd.Context(), name+".html", []byte(markup))
				if err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Exported %s to %s", name, where)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "dist", "Output directory for local exports")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default from quasar.yaml)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Export every demo app")

	return cmd
}

// demoOptions configures apps mounted by the CLI.
func demoOptions(cmd *cobra.Command, cfg *config.Config) []quasar.Option {
	return []quasar.Option{
		quasar.WithLogger(newLogger(cmd.ErrOrStderr(), cfg.Log)),
	}
}
