package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SaveSizeDelete(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)

	require.NoError(t, l.Save(ctx, "1_100_abc.jpg", []byte("hello"), "image/jpeg"))

	size, err := l.Size(ctx, "1_100_abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.Equal(t, "/media/1_100_abc.jpg", l.URL("1_100_abc.jpg"))

	require.NoError(t, l.Delete(ctx, "1_100_abc.jpg"))
	_, err = l.Size(ctx, "1_100_abc.jpg")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.ErrorIs(t, l.Delete(ctx, "1_100_abc.jpg"), ErrObjectNotFound)
}

func TestLocal_KeysStayInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	l, err := NewLocal(root, "/media")
	require.NoError(t, err)

	require.NoError(t, l.Save(ctx, "../../escape.jpg", []byte("x"), "image/jpeg"))
	size, err := l.Size(ctx, "escape.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	_, err = l.Size(ctx, "")
	assert.Error(t, err)
}
