package fsxlocal

import (
	"context"
	"testing"

	"github.com/Abraxas-365/hiresight/pkg/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileSystem(t *testing.T) {
	ctx := context.Background()
	fs := NewLocalFileSystem(t.TempDir())

	p := fs.Join("resumes", "t1", "cv.pdf")
	require.NoError(t, fs.WriteFile(ctx, p, []byte("%PDF")))

	data, err := fs.ReadFile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)

	require.NoError(t, fs.DeleteFile(ctx, p))
	require.NoError(t, fs.DeleteFile(ctx, p))

	_, err = fs.ReadFile(ctx, p)
	assert.ErrorIs(t, err, fsx.ErrNotFound)

	// traversal is clamped to the root
	require.NoError(t, fs.WriteFile(ctx, "../../escape.txt", []byte("x")))
	data, err = fs.ReadFile(ctx, "escape.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}
