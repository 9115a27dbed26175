package iostream_test

import (
	"testing"

	"github.com/getdocker/getdocker/iostream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanWriter(t *testing.T) {
	var lines []string
	w := iostream.ScanWriter('\n', func(s string) { lines = append(lines, s) })

	n, err := w.Write([]byte("hello\nwor"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, []string{"hello"}, lines)

	_, err = w.Write([]byte("ld\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, lines)

	require.NoError(t, w.Close())
	assert.Equal(t, []string{"hello", "world"}, lines)
}

func TestScanWriterFlushOnClose(t *testing.T) {
	var lines []string
	w := iostream.ScanWriter('\n', func(s string) { lines = append(lines, s) })

	_, err := w.Write([]byte("no trailing newline"))
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, w.Close())
	assert.Equal(t, []string{"no trailing newline"}, lines)

	_, err = w.Write([]byte("closed"))
	assert.Error(t, err)
}
