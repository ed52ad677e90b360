package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LINESTORE_LOG", "")
	t.Setenv("LINESTORE_LOG_FILE", "")
	exportOut = ""

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_EditExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\r\ntwo\n"), 0644))

	out, err := execute(t, "3\nthree\n7\n9\n", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Opened existing file")
	assert.Contains(t, out, "(2 lines)")
	assert.Contains(t, out, "Goodbye.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", string(data))
}

func TestRoot_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.txt")

	out, err := execute(t, "3\nhello\n7\n9\n", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Starting new file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestRoot_UnnamedBuffer(t *testing.T) {
	out, err := execute(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Starting new unnamed buffer.")
	assert.Contains(t, out, "End of input detected. Exiting.")
}

func TestRoot_BadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("max_lines: -1\n"), 0644))

	t.Setenv("LINESTORE_LOG", "")
	t.Setenv("LINESTORE_LOG_FILE", "")
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", cfg})
	require.Error(t, rootCmd.Execute())
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(src, []byte("# Title\n\n- [x] done\n"), 0644))

	out, err := execute(t, "", "export", src)
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, `checked="" disabled="" type="checkbox"`)

	dst := filepath.Join(dir, "doc.html")
	_, err = execute(t, "", "export", src, "-o", dst)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Title</h1>")

	_, err = execute(t, "", "export", filepath.Join(dir, "missing.md"))
	require.Error(t, err)
}
