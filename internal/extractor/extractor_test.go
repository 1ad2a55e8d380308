package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockExtractor_Extract(t *testing.T) {
	e := NewBlockExtractor()

	t.Run("flattens blocks with inline spans", func(t *testing.T) {
		body := `[
			{"type": "heading", "content": [{"type": "text", "text": "The Solar System"}]},
			{"type": "paragraph", "content": [
				{"type": "text", "text": "The sun is "},
				{"type": "text", "text": "a star."}
			]}
		]`

		text, err := e.Extract(body)
		require.NoError(t, err)
		assert.Equal(t, "The Solar System\nThe sun is a star.", text)
	})

	t.Run("walks nested children", func(t *testing.T) {
		body := `[
			{"type": "list", "content": "Planets:", "children": [
				{"type": "item", "content": "Mercury"},
				{"type": "item", "content": "Venus"}
			]}
		]`

		text, err := e.Extract(body)
		require.NoError(t, err)
		assert.Equal(t, "Planets:\nMercury\nVenus", text)
	})

	t.Run("passes through non-block bodies as plain text", func(t *testing.T) {
		text, err := e.Extract("Cats are mammals.")
		require.NoError(t, err)
		assert.Equal(t, "Cats are mammals.", text)
	})

	t.Run("empty body yields empty text", func(t *testing.T) {
		text, err := e.Extract("   ")
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("skips blocks with no text", func(t *testing.T) {
		body := `[
			{"type": "divider"},
			{"type": "paragraph", "content": "After the divider"}
		]`

		text, err := e.Extract(body)
		require.NoError(t, err)
		assert.Equal(t, "After the divider", text)
	})
}
