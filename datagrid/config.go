package datagrid

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const DefaultDoubleClickMS = 300

// Options configure selection and layout behaviour. Zero values of the
// numeric fields select their defaults, except Overscan where only nil
// does. Start from DefaultOptions to get the default booleans too.
type Options struct {
	MultiSelect   bool          `toml:"multi_select"`
	SelectionType SelectionType `toml:"selection_type"`
	// TrackBy names the field that identifies a record across refreshes.
	// When empty records are tracked by identity.
	TrackBy string `toml:"track_by"`
	// Overscan is the share of the viewport height rendered beyond it. Nil
	// means DefaultOverscan, 0 renders just the viewport.
	Overscan         *float64 `toml:"overscan"`
	MinColumnWidth   float64  `toml:"min_column_width"`
	HeaderHeight     float64  `toml:"header_height"`
	DoubleClickMS    int      `toml:"double_click_ms"`
	Sortable         bool     `toml:"sortable"`
	ResizableColumns bool     `toml:"resizable_columns"`

	Logger *slog.Logger     `toml:"-"`
	Clock  func() time.Time `toml:"-"`
}

func DefaultOptions() Options {
	return Options{
		SelectionType:    SelectRow,
		Overscan:         Float(DefaultOverscan),
		MinColumnWidth:   DefaultMinColumnWidth,
		DoubleClickMS:    DefaultDoubleClickMS,
		Sortable:         true,
		ResizableColumns: true,
	}
}

// Float returns a pointer to v, for Options.Overscan.
func Float(v float64) *float64 { return &v }

// normalized fills defaults and validates.
func (o Options) normalized() (Options, error) {
	switch o.SelectionType {
	case "":
		o.SelectionType = SelectRow
	case SelectRow, SelectCell:
	default:
		return o, configErrorf("unknown selection type %q", o.SelectionType)
	}
	switch {
	case o.Overscan == nil:
		o.Overscan = Float(DefaultOverscan)
	case !(*o.Overscan >= 0):
		return o, configErrorf("overscan must not be negative, got %v", *o.Overscan)
	default:
		o.Overscan = Float(*o.Overscan)
	}
	if o.MinColumnWidth <= 0 {
		o.MinColumnWidth = DefaultMinColumnWidth
	}
	if o.DoubleClickMS <= 0 {
		o.DoubleClickMS = DefaultDoubleClickMS
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o, nil
}

// ConfigPath is where LoadOptions looks by default, honouring
// XDG_CONFIG_HOME.
func ConfigPath(app string) (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, app, "grid.toml"), nil
}

// LoadOptions reads options from a TOML file on top of DefaultOptions. A
// missing file yields the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, errors.Wrapf(err, "read %s", path)
	}

	if err := toml.Unmarshal(data, &opts); err != nil {
		return DefaultOptions(), errors.Wrapf(err, "decode %s", path)
	}
	if _, err := opts.normalized(); err != nil {
		return DefaultOptions(), errors.Wrapf(err, "validate %s", path)
	}
	return opts, nil
}

// Save writes the options as TOML, creating the parent directory.
func (o Options) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(o); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(f.Close(), "write %s", path)
}
