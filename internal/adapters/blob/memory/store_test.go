package memory

import (
	"context"
	"strings"
	"testing"

	"refugio-adopciones/internal/ports/blobstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	s := New("")
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, blobstore.Object{Key: "d/1-0.jpg", Body: strings.NewReader("abc"), Size: 3}))
	data, ok := s.Get("d/1-0.jpg")
	require.True(t, ok)
	assert.Equal(t, "abc", string(data))
	assert.Equal(t, "memory://dog-images/d/1-0.jpg", s.PublicURL("d/1-0.jpg"))

	require.NoError(t, s.Remove(ctx, "d/1-0.jpg"))
	assert.ErrorIs(t, s.Remove(ctx, "d/1-0.jpg"), blobstore.ErrNotFound)
	assert.Zero(t, s.Len())

	assert.Error(t, s.Upload(ctx, blobstore.Object{Key: "x"}))
}
