package editor

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linestore/internal/clock"
	"linestore/internal/core"
	"linestore/internal/logs"
	"linestore/pkg/lines"
)

var testStart = time.Date(2025, 11, 23, 10, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, files map[string]string) (*Session, *core.InMemoryStore, *clock.MockClock) {
	t.Helper()
	ms := core.NewInMemoryStore()
	for name, content := range files {
		ms.Put(name, []byte(content))
	}
	clk := clock.NewMockClock(testStart)
	return NewSession(ms, clk, nil, lines.Options{}), ms, clk
}

func runConsole(t *testing.T, sess *Session, input string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, NewConsole(sess, strings.NewReader(input), &out).Run())
	return out.String()
}

func TestSession_OpenExisting(t *testing.T) {
	sess, _, _ := newTestSession(t, map[string]string{"notes.txt": "a\nb\n"})

	require.NoError(t, sess.Open("notes.txt"))
	assert.Equal(t, "notes.txt", sess.Filename)
	assert.False(t, sess.Modified)
	assert.Equal(t, []string{"a", "b"}, sess.Store.Lines())
}

func TestSession_OpenMissingStartsEmpty(t *testing.T) {
	sess, _, _ := newTestSession(t, nil)
	require.NoError(t, sess.Append("discarded"))

	err := sess.Open("new.txt")
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "new.txt", sess.Filename)
	assert.False(t, sess.Modified)
	assert.Equal(t, 0, sess.Store.Len())
}

func TestSession_MutationsSetModified(t *testing.T) {
	tests := []struct {
		name string
		op   func(*Session) error
		want []string
	}{
		{name: "insert", op: func(s *Session) error { return s.Insert(0, "x") }, want: []string{"x", "a", "b"}},
		{name: "append", op: func(s *Session) error { return s.Append("x") }, want: []string{"a", "b", "x"}},
		{name: "replace", op: func(s *Session) error { return s.Replace(1, "x") }, want: []string{"a", "x"}},
		{name: "delete", op: func(s *Session) error { return s.Delete(0) }, want: []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _, _ := newTestSession(t, map[string]string{"f.txt": "a\nb\n"})
			require.NoError(t, sess.Open("f.txt"))

			require.NoError(t, tt.op(sess))
			assert.True(t, sess.Modified)
			assert.Equal(t, tt.want, sess.Store.Lines())
		})
	}
}

func TestSession_FailedMutationKeepsFlag(t *testing.T) {
	sess, _, _ := newTestSession(t, nil)

	require.ErrorIs(t, sess.Delete(0), lines.ErrOutOfRange)
	require.ErrorIs(t, sess.Replace(0, "x"), lines.ErrOutOfRange)
	require.ErrorIs(t, sess.Insert(3, "x"), lines.ErrOutOfRange)
	assert.False(t, sess.Modified)
}

func TestSession_Save(t *testing.T) {
	sess, ms, clk := newTestSession(t, nil)

	require.ErrorIs(t, sess.Save(), ErrNoFilename)

	require.NoError(t, sess.Append("hello"))
	clk.Advance(time.Minute)
	require.NoError(t, sess.SaveAs("out.txt"))

	assert.Equal(t, "out.txt", sess.Filename)
	assert.False(t, sess.Modified)
	assert.Equal(t, testStart.Add(time.Minute), sess.SavedAt)

	data, ok := ms.Bytes("out.txt")
	require.True(t, ok)
	assert.Equal(t, "hello\n", string(data))

	require.NoError(t, sess.Append("world"))
	require.NoError(t, sess.Save())
	data, _ = ms.Bytes("out.txt")
	assert.Equal(t, "hello\nworld\n", string(data))
}

func TestConsole_EndOfInput(t *testing.T) {
	sess, _, _ := newTestSession(t, nil)
	out := runConsole(t, sess, "")

	assert.Contains(t, out, "File    : <unnamed>")
	assert.Contains(t, out, "Status  : saved")
	assert.Contains(t, out, "Lines   : 0")
	assert.Contains(t, out, "End of input detected. Exiting.")
}

func TestConsole_EditingScenario(t *testing.T) {
	sess, ms, _ := newTestSession(t, nil)

	// append twice, insert at 2, edit line 1, search, delete line 3, view,
	// save (prompts for a name), quit
	input := strings.Join([]string{
		"3", "alpha",
		"3", "gamma",
		"2", "2", "beta",
		"4", "1", "ALPHA",
		"6", "amm",
		"5", "3",
		"1",
		"7", "out.txt",
		"9",
	}, "\n") + "\n"

	out := runConsole(t, sess, input)

	assert.Contains(t, out, "Current text: alpha")
	assert.Contains(t, out, "First match at line 3: gamma")
	assert.Contains(t, out, "1: ALPHA\n2: beta\n")
	assert.Contains(t, out, "Saved to 'out.txt'.")
	assert.Contains(t, out, "Goodbye.")

	data, ok := ms.Bytes("out.txt")
	require.True(t, ok)
	assert.Equal(t, "ALPHA\nbeta\n", string(data))
}

func TestConsole_InvalidInput(t *testing.T) {
	sess, _, _ := newTestSession(t, map[string]string{"f.txt": "a\nb\n"})
	require.NoError(t, sess.Open("f.txt"))

	input := strings.Join([]string{
		"42",
		"5", "0",
		"5", "3",
		"2", "x",
		"6", "",
		"6", "zzz",
		"9",
	}, "\n") + "\n"

	out := runConsole(t, sess, input)

	assert.Contains(t, out, "Unknown command: 42")
	assert.Equal(t, 3, strings.Count(out, "Invalid number."))
	assert.Contains(t, out, "Empty search string.")
	assert.Contains(t, out, "No match found for 'zzz'.")
	assert.Equal(t, []string{"a", "b"}, sess.Store.Lines())
	assert.False(t, sess.Modified)
}

func TestConsole_EmptyBufferGuards(t *testing.T) {
	sess, _, _ := newTestSession(t, nil)
	out := runConsole(t, sess, "4\n5\n1\n9\n")

	assert.Contains(t, out, "Buffer is empty. Nothing to edit.")
	assert.Contains(t, out, "Buffer is empty. Nothing to delete.")
	assert.Contains(t, out, "[Buffer is empty]")
}

func TestConsole_QuitWithUnsavedChanges(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantGoodbye bool
	}{
		{name: "confirm", input: "3\nx\n9\ny\n", wantGoodbye: true},
		{name: "decline then eof", input: "3\nx\n9\nn\n", wantGoodbye: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _, _ := newTestSession(t, nil)
			out := runConsole(t, sess, tt.input)

			assert.Contains(t, out, "Status  : modified")
			assert.Contains(t, out, "You have unsaved changes. Quit anyway? (y/n): ")
			assert.Equal(t, tt.wantGoodbye, strings.Contains(out, "Goodbye."))
			if !tt.wantGoodbye {
				assert.Contains(t, out, "Quit cancelled.")
			}
		})
	}
}

func TestConsole_SaveCancelled(t *testing.T) {
	sess, ms, _ := newTestSession(t, nil)
	out := runConsole(t, sess, "3\nx\n7\n\n8\n\n9\ny\n")

	assert.Contains(t, out, "Save cancelled.")
	assert.Contains(t, out, "Save As cancelled.")
	_, ok := ms.Bytes("")
	assert.False(t, ok)
}

func TestConsole_SaveAsRenamesSession(t *testing.T) {
	sess, ms, _ := newTestSession(t, map[string]string{"a.txt": "one\n"})
	require.NoError(t, sess.Open("a.txt"))

	out := runConsole(t, sess, "8\nb.txt\n9\n")
	assert.Contains(t, out, "Saved to 'b.txt'.")
	assert.Contains(t, out, "Saved   : 2025-11-23 10:00:00")
	assert.Equal(t, "b.txt", sess.Filename)

	data, ok := ms.Bytes("b.txt")
	require.True(t, ok)
	assert.Equal(t, "one\n", string(data))
}

func TestSession_SaveLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := logs.New(&buf).Logger
	fs := core.NewFileStore(false, 0, logger)
	sess := NewSession(fs, clock.NewMockClock(testStart), logger, lines.Options{})

	require.NoError(t, sess.Append("x"))
	require.NoError(t, sess.SaveAs(filepath.Join(t.TempDir(), "out.txt")))
	assert.Equal(t, 1, strings.Count(buf.String(), `"msg":"save"`))

	buf.Reset()
	require.Error(t, sess.SaveAs(filepath.Join(t.TempDir(), "missing", "out.txt")))
	assert.Equal(t, 1, strings.Count(buf.String(), `"msg":"save_failed"`))
}

func TestConsole_IndexPromptTrimsSpace(t *testing.T) {
	sess, _, _ := newTestSession(t, map[string]string{"f.txt": "a\nb\nc\n"})
	require.NoError(t, sess.Open("f.txt"))

	out := runConsole(t, sess, "5\n 2 \n4\n\t1\nA\n")
	assert.NotContains(t, out, "Invalid number.")
	assert.Equal(t, []string{"A", "c"}, sess.Store.Lines())
}
