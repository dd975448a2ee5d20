package app

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainReader(t *testing.T) {
	in := bytes.NewBufferString("$a$\r\n\\\\\nlast line without newline")
	var out bytes.Buffer
	r := newPlainReader(context.Background(), in, &out)

	line, err := r.ReadLine(">>> ")
	require.NoError(t, err)
	assert.Equal(t, "$a$", line)

	line, err = r.ReadLine("... ")
	require.NoError(t, err)
	assert.Equal(t, `\\`, line)

	line, err = r.ReadLine("... ")
	require.NoError(t, err)
	assert.Equal(t, "last line without newline", line)

	_, err = r.ReadLine("... ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, ">>> ... ... ... ", out.String())
}

func TestPlainReaderKeepsInnerWhitespace(t *testing.T) {
	r := newPlainReader(context.Background(), bytes.NewBufferString("  \\alpha  \t\n"), io.Discard)

	line, err := r.ReadLine(">>> ")
	require.NoError(t, err)
	assert.Equal(t, "  \\alpha  \t", line)
}

func TestPlainReaderInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	defer pw.Close()
	r := newPlainReader(ctx, pr, io.Discard)

	cancel()
	_, err := r.ReadLine(">>> ")
	assert.ErrorIs(t, err, ErrInterrupt)
}
