package datagrid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOptions(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		opts, err := LoadOptions(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultOptions(), opts)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		opts, err := LoadOptions(writeConfig(t, `
multi_select = true
selection_type = "cell"
track_by = "id"
`))
		require.NoError(t, err)
		assert.True(t, opts.MultiSelect)
		assert.Equal(t, SelectCell, opts.SelectionType)
		assert.Equal(t, "id", opts.TrackBy)
		assert.Equal(t, DefaultOverscan, *opts.Overscan)
		assert.True(t, opts.Sortable)
	})

	t.Run("zero overscan", func(t *testing.T) {
		opts, err := LoadOptions(writeConfig(t, `overscan = 0.0`))
		require.NoError(t, err)
		require.NotNil(t, opts.Overscan)
		assert.Zero(t, *opts.Overscan)

		e, err := New(testRows(100), testColumns, 32, testViewport, opts)
		require.NoError(t, err)
		assert.Equal(t, 10, e.Geometry().RowsPerBlock)
	})

	t.Run("invalid value", func(t *testing.T) {
		opts, err := LoadOptions(writeConfig(t, `selection_type = "column"`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validate")

		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, DefaultOptions(), opts)
	})

	t.Run("not toml", func(t *testing.T) {
		_, err := LoadOptions(writeConfig(t, `multi_select = `))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})
}

func TestOptionsSave(t *testing.T) {
	opts := DefaultOptions()
	opts.MultiSelect = true
	opts.TrackBy = "id"
	opts.Overscan = Float(0.5)
	opts.DoubleClickMS = 450
	opts.ResizableColumns = false

	path := filepath.Join(t.TempDir(), "app", "grid.toml")
	require.NoError(t, opts.Save(path))

	loaded, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, opts, loaded)
}

func TestOptionsSave_Errors(t *testing.T) {
	t.Run("parent is a file", func(t *testing.T) {
		parent := writeConfig(t, "")
		require.Error(t, DefaultOptions().Save(filepath.Join(parent, "grid.toml")))
	})

	t.Run("write fails", func(t *testing.T) {
		if _, err := os.Stat("/dev/full"); err != nil {
			t.Skip("no /dev/full")
		}
		err := DefaultOptions().Save("/dev/full")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/dev/full")
	})
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := ConfigPath("csvgrid")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "csvgrid", "grid.toml"), path)
}
