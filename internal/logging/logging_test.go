// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pandoc-fixtures/pkg/types"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"", "console", "JSON", "pretty"} {
		t.Run("format "+format, func(t *testing.T) {
			logger, err := New("fixturegen", types.LogConfig{Level: "debug", Format: format})
			require.NoError(t, err)
			require.NotNil(t, logger)
			logger.Debug("logger.ready", "format", format)
		})
	}
}

func TestNew_Unnamed(t *testing.T) {
	logger, err := New("", types.LogConfig{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("fixturegen", types.LogConfig{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")

	_, err = New("fixturegen", types.LogConfig{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNormalizeLevel(t *testing.T) {
	empty, err := normalizeLevel("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, in := range []string{"trace", "DEBUG", " info ", "warning", "error"} {
		got, err := normalizeLevel(in)
		require.NoError(t, err)
		assert.NotEmpty(t, got, "level %q", in)
	}
}
