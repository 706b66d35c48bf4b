package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigFile(t *testing.T) {
	t.Setenv("GROVE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "grove", "tour.yml"), GlobalConfigFile())

	t.Setenv("GROVE_HOME", "/portable")
	assert.Equal(t, filepath.Join("/portable", "config", "grove", "tour.yml"), GlobalConfigFile())
}

func TestStateFile(t *testing.T) {
	t.Setenv("GROVE_HOME", "/portable")
	path, err := StateFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/portable", "state", "tour", "state.yml"), path)

	t.Setenv("GROVE_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	path, err = StateFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".grove", "tour", "state.yml"), path)
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TOUR_TEST_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/state.yml", filepath.Join(home, "state.yml")},
		{"$TOUR_TEST_DIR/state.yml", "/data/state.yml"},
		{"/abs/state.yml", "/abs/state.yml"},
		{"~other/state.yml", "~other/state.yml"},
	}
	for _, tt := range tests {
		got, err := Expand(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
