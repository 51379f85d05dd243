package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	md, err := New().Normalize(`<p class="c-article-body">Ein <b>fetter</b> Satz.</p><p class="c-article-body">Zweiter.</p>`)
	require.NoError(t, err)
	assert.Equal(t, "Ein **fetter** Satz.\n\nZweiter.", md)
}

func TestNormalizeEmpty(t *testing.T) {
	md, err := New().Normalize("  \n")
	require.NoError(t, err)
	assert.Equal(t, "", md)
}
