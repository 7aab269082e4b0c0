package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexballas/xdatagrid/datagrid"
)

func TestRegister(t *testing.T) {
	var f Flags
	cmd := &cobra.Command{Use: "grid", RunE: func(*cobra.Command, []string) error { return nil }}
	f.Register(cmd)

	cmd.SetArgs([]string{"-d", "--config", "/tmp/grid.toml", "--no-color"})
	require.NoError(t, cmd.Execute())

	assert.True(t, f.Debug)
	assert.True(t, f.NoColor)
	assert.Equal(t, "/tmp/grid.toml", f.Config)
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer

	f := Flags{NoColor: true}
	f.Logger(&buf).Debug("hidden")
	assert.Empty(t, buf.String())

	f.Debug = true
	f.Logger(&buf).Debug("shown", "rows", 3)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "rows=3")
}

func TestOptionsFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	require.NoError(t, os.WriteFile(path, []byte("multi_select = true\nselection_type = \"cell\"\n"), 0o644))

	var buf bytes.Buffer
	f := Flags{Config: path, NoColor: true}
	log := f.Logger(&buf)
	opts, err := f.Options("csvgrid", log)
	require.NoError(t, err)

	assert.True(t, opts.MultiSelect)
	assert.Equal(t, datagrid.SelectCell, opts.SelectionType)
	assert.Same(t, log, opts.Logger)
}

func TestOptionsFromConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var f Flags
	opts, err := f.Options("dirgrid", f.Logger(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, datagrid.DefaultOptions().SelectionType, opts.SelectionType)
	assert.False(t, opts.MultiSelect)
}

func TestOptionsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	require.NoError(t, os.WriteFile(path, []byte("overscan = -1\n"), 0o644))

	f := Flags{Config: path}
	_, err := f.Options("csvgrid", f.Logger(&bytes.Buffer{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate")
}
