package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"redress/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageLifecycle(t *testing.T) {
	ctx := context.Background()

	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key := NewKey("report.txt")
	require.NoError(t, s.Save(ctx, key, strings.NewReader("attachment contents"), "text/plain"))

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "attachment contents", string(body))

	require.NoError(t, s.Delete(ctx, key))

	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, types.ErrAttachmentNotFound)

	err = s.Delete(ctx, key)
	assert.ErrorIs(t, err, types.ErrAttachmentNotFound)
}

func TestLocalStorageRejectsTraversalKeys(t *testing.T) {
	ctx := context.Background()

	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", `a\b`, "..", "x..y/../z"} {
		err := s.Save(ctx, key, strings.NewReader("x"), "text/plain")
		assert.Error(t, err, "key %q", key)
	}
}

func TestNewKeyPreservesExtension(t *testing.T) {
	key := NewKey("Photo Evidence.JPG")

	assert.True(t, strings.HasSuffix(key, ".jpg"), "got %q", key)
	assert.NotContains(t, key, " ")

	// Keys must be unique per call.
	assert.NotEqual(t, key, NewKey("Photo Evidence.JPG"))
}
