package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quasar-dev/quasar/internal/config"
	"github.com/quasar-dev/quasar/internal/demo"
	"github.com/quasar-dev/quasar/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:   "quasar",
		Short: "Reactive data binding for server-side documents",
		Long: `Quasar binds typed state to markup and re-renders only the views
whose data changed.

The CLI serves the bundled demo apps live in a browser, prints their
rendered markup and exports snapshots to disk or S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "Directory containing "+config.ConfigFileName)

	rootCmd.AddCommand(
		serveCmd(&dir),
		renderCmd(&dir),
		exportCmd(&dir),
		listCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadDemo resolves the demo named by args, or the configured app.
func loadDemo(cfg *config.Config, args []string) (demo.Demo, error) {
	name := cfg.App
	if len(args) > 0 {
		name = args[0]
	}
	d, ok := demo.Lookup(name)
	if !ok {
		return demo.Demo{}, errors.New("Q080").
			WithDetail(fmt.Sprintf("No demo named %q. Available: %s", name, strings.Join(demo.Names(), ", ")))
	}
	return d, nil
}

// newLogger builds the slog logger described by the log settings.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
