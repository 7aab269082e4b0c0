// Package cli holds the flag and logging setup shared by the example
// programs.
package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alexballas/xdatagrid/datagrid"
)

// Flags are the options every example accepts.
type Flags struct {
	Debug   bool
	Config  string
	NoColor bool
}

// Register adds the flags to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Debug, "debug", "d", false, "Enable debug logging")
	cmd.Flags().StringVar(&f.Config, "config", "", "Grid options file (default $XDG_CONFIG_HOME/<app>/grid.toml)")
	cmd.Flags().BoolVar(&f.NoColor, "no-color", false, "Disable coloured log output")
}

// Logger builds a tint handler on w at the level the flags ask for.
func (f *Flags) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    f.NoColor,
	}))
}

// Options loads grid options for app, from --config when given and from
// the user config directory otherwise. log becomes the grid logger.
func (f *Flags) Options(app string, log *slog.Logger) (datagrid.Options, error) {
	path := f.Config
	if path == "" {
		p, err := datagrid.ConfigPath(app)
		if err != nil {
			return datagrid.Options{}, errors.Wrap(err, "locate config")
		}
		path = p
	}

	opts, err := datagrid.LoadOptions(path)
	if err != nil {
		return datagrid.Options{}, err
	}
	opts.Logger = log
	log.Debug("grid options loaded", "path", path, "selection", opts.SelectionType, "multi", opts.MultiSelect)
	return opts, nil
}
