package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "info", Mode: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug().Msg("hidden")
	logger.Info().Str("sheet", "Data").Msg("sheet extracted")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"sheet":"Data"`)
	assert.Contains(t, out, `"message":"sheet extracted"`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("src", "book.xlsx").Msg("extraction failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "extraction failed")
	assert.Contains(t, out, "src=book.xlsx")
	assert.NotContains(t, out, "\x1b[")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetfacts.log")
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "debug", Mode: "JSON", File: path}, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Empty(t, buf.String())
}

func TestNewInvalid(t *testing.T) {
	_, _, err := New(Options{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, _, err = New(Options{Mode: "XML"}, &bytes.Buffer{})
	assert.Error(t, err)
}
