package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStyles(t *testing.T) {
	for _, name := range []string{"Title", "Success", "Warning", "Error", "Muted", "Path", "Label", "Frame"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "missing style %s", name)
	}
	assert.True(t, GetStyle("Title").GetBold())
	assert.Equal(t, 14, GetStyle("Label").GetWidth())
}

func TestGetStyle_Unknown(t *testing.T) {
	style := GetStyle("NoSuchStyle")
	assert.Equal(t, "plain", style.Render("plain"))
}

func TestLoadStyles(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, LoadStylesFromBytes(defaultStyles)) })

	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
colors:
  hot:
    light: "#FF0000"
    dark: "#FF0000"
styles:
  Title:
    italic: true
    foreground: hot
`), 0644))

	require.NoError(t, LoadStyles(path))
	assert.True(t, GetStyle("Title").GetItalic())
	assert.False(t, GetStyle("Title").GetBold())
	_, ok := StyleRegistry["Success"]
	assert.False(t, ok)

	assert.Error(t, LoadStyles(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, LoadStylesFromBytes([]byte("styles: [")))
}
