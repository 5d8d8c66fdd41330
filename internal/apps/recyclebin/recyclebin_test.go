package recyclebin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
)

func TestRenderEmpty(t *testing.T) {
	v := Render(nil)
	assert.Equal(t, "Files in Recycle Bin: 0", v.Label)
	assert.Equal(t, EmptyMessage, v.Empty)
	assert.Empty(t, v.Items)
	assert.False(t, v.CanEmpty)
}

func TestRenderItems(t *testing.T) {
	v := Render([]vfs.Document{
		{ID: "doc_a", Name: "a.txt", Content: "secret"},
		{ID: "doc_b", Name: "b.txt"},
	})
	assert.Equal(t, "Files in Recycle Bin: 2", v.Label)
	assert.Equal(t, 2, v.Count)
	assert.Equal(t, []Item{{ID: "doc_a", Name: "a.txt"}, {ID: "doc_b", Name: "b.txt"}}, v.Items)
	assert.Empty(t, v.Empty)
	assert.True(t, v.CanEmpty)
}
