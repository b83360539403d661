package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	noConfig := filepath.Join(t.TempDir(), "none.yaml")

	out, err := execute(t, "--config", noConfig, "testdata/example.txt")
	require.NoError(t, err)
	assert.Equal(t, "  Accessible: 13\n  Total removable: 43\n", out)
}

func TestRootCmdMarker(t *testing.T) {
	noConfig := filepath.Join(t.TempDir(), "none.yaml")
	path := writeFile(t, "hash.txt", "###\n###\n###\n")

	out, err := execute(t, "--config", noConfig, "--marker", "#", "-p", "2", path, "testdata/example.txt")
	require.NoError(t, err)
	assert.Equal(t, path+":\n  Accessible: 4\n  Total removable: 9\n"+
		"testdata/example.txt:\n  Accessible: 13\n  Total removable: 43\n", out)
}

func TestRootCmdConfig(t *testing.T) {
	cfg := writeFile(t, "gridclear.yaml", "marker: \"#\"\nlogging:\n  level: error\n")
	path := writeFile(t, "hash.txt", "#.#\n")

	out, err := execute(t, "--config", cfg, path)
	require.NoError(t, err)
	assert.Equal(t, "  Accessible: 2\n  Total removable: 2\n", out)
}

func TestRootCmdErrors(t *testing.T) {
	noConfig := filepath.Join(t.TempDir(), "none.yaml")

	out, err := execute(t, "--config", noConfig, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "missing.txt")
	assert.Empty(t, out, "error is reported once by the caller")

	_, err = execute(t, "--config", noConfig, "--marker", "ab", "testdata/example.txt")
	assert.ErrorContains(t, err, "marker")

	_, err = execute(t, "--config", noConfig, "--parallel", "0", "testdata/example.txt")
	assert.ErrorContains(t, err, "parallel")
}

func TestRootCmdJSON(t *testing.T) {
	noConfig := filepath.Join(t.TempDir(), "none.yaml")
	path := writeFile(t, "block.txt", block3x3)

	out, err := execute(t, "--config", noConfig, "--json", path, "testdata/example.txt")
	require.NoError(t, err)
	assert.Equal(t, `{"accessible":4,"total_removable":9,"input":"`+path+`"}`+"\n"+
		`{"accessible":13,"total_removable":43,"input":"testdata/example.txt"}`+"\n", out)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gridclear "+version+"\n", out)
}
