package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"texpop/session"
	"texpop/ui"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedReader replays lines and then returns end.
type scriptedReader struct {
	lines   []string
	end     error
	prompts []string
}

func (r *scriptedReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", r.end
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Close() error { return nil }

type fakeCompiler struct {
	snippets  []string
	errs      []error
	onCompile func()
}

func (f *fakeCompiler) Compile(ctx context.Context, snippet string) error {
	f.snippets = append(f.snippets, snippet)
	if f.onCompile != nil {
		f.onCompile()
	}
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

type testEnv struct {
	loop     *Loop
	reader   *scriptedReader
	compiler *fakeCompiler
	ws       *session.Workspace
	out      *bytes.Buffer
}

func newTestEnv(t *testing.T, lines []string, end error) *testEnv {
	t.Helper()
	out := &bytes.Buffer{}
	reader := &scriptedReader{lines: lines, end: end}
	compiler := &fakeCompiler{}
	ws := &session.Workspace{Dir: filepath.Join(t.TempDir(), "latex_temp"), Base: "_temp"}
	loop := &Loop{
		Reader:         reader,
		Console:        ui.NewConsole(out, termenv.Ascii),
		Compiler:       compiler,
		Workspace:      ws,
		CompileCommand: ":c",
	}
	return &testEnv{loop: loop, reader: reader, compiler: compiler, ws: ws, out: out}
}

func TestCompileSendsJoinedBuffer(t *testing.T) {
	env := newTestEnv(t, []string{`\[`, `  x^2 + y^2 `, `\]`, ":c", "next"}, io.EOF)

	require.NoError(t, env.loop.Run(context.Background()))

	require.Len(t, env.compiler.snippets, 1)
	assert.Equal(t, "\\[\n  x^2 + y^2 \n\\]", env.compiler.snippets[0])
	assert.Equal(t, []string{">>> ", "... ", "... ", "... ", ">>> ", "... "}, env.reader.prompts,
		"buffer must be empty right after the compile")
}

func TestCompileCommandIsTrimmedAndCaseInsensitive(t *testing.T) {
	env := newTestEnv(t, []string{"a", "  :C \t", "b", ":c"}, io.EOF)

	require.NoError(t, env.loop.Run(context.Background()))

	assert.Equal(t, []string{"a", "b"}, env.compiler.snippets)
}

func TestCompileOnEmptyBuffer(t *testing.T) {
	env := newTestEnv(t, []string{":c"}, io.EOF)

	require.NoError(t, env.loop.Run(context.Background()))

	assert.Empty(t, env.compiler.snippets)
	assert.Contains(t, env.out.String(), "No code to compile.\n")
}

func TestBufferClearedAfterFailedCompile(t *testing.T) {
	env := newTestEnv(t, []string{`\foo`, ":c", ":c"}, io.EOF)
	env.compiler.errs = []error{&session.CompileError{ExitCode: 1, Snippet: "! Undefined control sequence.\nl.7 \\foo"}}

	require.NoError(t, env.loop.Run(context.Background()))

	assert.Len(t, env.compiler.snippets, 1)
	out := env.out.String()
	assert.Contains(t, out, "\n--- LaTeX Compilation Error ---\n! Undefined control sequence.\nl.7 \\foo\n")
	assert.Contains(t, out, "No code to compile.")
}

func TestErrorsAreReportedAndLoopContinues(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "unknown compile error",
			err:      &session.CompileError{ExitCode: 1, Snippet: session.UnknownCompileError},
			expected: "--- LaTeX Compilation Error ---\n" + session.UnknownCompileError + "\n",
		},
		{
			name:     "missing pdf",
			err:      session.ErrMissingPDF,
			expected: "Error: PDF file was not created by the compiler.\n",
		},
		{
			name:     "preview failure",
			err:      &session.PreviewError{Err: errors.New("broken pipe")},
			expected: "--- Preview Generation Error ---\nbroken pipe\n",
		},
		{
			name:     "anything else",
			err:      errors.New("failed to run compiler pdflatex: not found"),
			expected: "Error: failed to run compiler pdflatex: not found\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, []string{"x", ":c", "y", ":c"}, io.EOF)
			env.compiler.errs = []error{tt.err}

			require.NoError(t, env.loop.Run(context.Background()))

			assert.Equal(t, []string{"x", "y"}, env.compiler.snippets)
			assert.Contains(t, env.out.String(), tt.expected)
		})
	}
}

func TestStatusLines(t *testing.T) {
	env := newTestEnv(t, nil, io.EOF)

	env.loop.OnStatus(session.Compiling)
	env.loop.OnStatus(session.Compiled)

	assert.Equal(t, "Compiling...\nCompilation successful! Displaying preview...\n", env.out.String())
}

func TestExitRemovesWorkspace(t *testing.T) {
	for _, end := range []error{io.EOF, ErrInterrupt} {
		t.Run(end.Error(), func(t *testing.T) {
			env := newTestEnv(t, []string{"half", "typed"}, end)
			require.NoError(t, env.ws.Ensure())
			require.NoError(t, os.WriteFile(env.ws.Path(".tex"), []byte("x"), 0644))
			require.NoError(t, os.WriteFile(filepath.Join(env.ws.Dir, "stray.txt"), []byte("x"), 0644))

			require.NoError(t, env.loop.Run(context.Background()))

			assert.NoDirExists(t, env.ws.Dir)
			assert.Empty(t, env.compiler.snippets, "partial buffer is discarded")
			assert.True(t, strings.HasSuffix(env.out.String(), "\nExiting.\n"), env.out.String())
		})
	}
}

func TestExitWithoutWorkspaceOnDisk(t *testing.T) {
	env := newTestEnv(t, nil, io.EOF)

	require.NoError(t, env.loop.Run(context.Background()))
	assert.NoDirExists(t, env.ws.Dir)
}

func TestCancelledContextEndsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	env := newTestEnv(t, []string{"a", ":c", "b", ":c"}, io.EOF)
	// Simulate SIGINT arriving while the first compile runs.
	env.compiler.onCompile = cancel
	env.compiler.errs = []error{context.Canceled}

	require.NoError(t, env.loop.Run(ctx))

	assert.Equal(t, []string{"a"}, env.compiler.snippets)
	assert.Contains(t, env.out.String(), "Exiting.")
	assert.NotContains(t, env.out.String(), "Error")
}

func TestBufferedReturnsCopy(t *testing.T) {
	env := newTestEnv(t, nil, io.EOF)
	env.loop.handleLine(context.Background(), "x")

	got := env.loop.Buffered()
	got[0] = "changed"
	assert.Equal(t, []string{"x"}, env.loop.Buffered())
}
