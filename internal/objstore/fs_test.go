package objstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custodia/internal/objstore"
)

func TestFSStore_PutGet(t *testing.T) {
	store := objstore.NewFSStore(t.TempDir())
	ctx := context.Background()

	data := []byte("conteúdo do comprovante")
	require.NoError(t, store.Put(ctx, "users/u/receipts/recibo.jpg", data, "image/jpeg"))

	obj, err := store.Get(ctx, "users/u/receipts/recibo.jpg")
	require.NoError(t, err)
	assert.Equal(t, data, obj.Bytes)
}

func TestFSStore_NotFound(t *testing.T) {
	store := objstore.NewFSStore(t.TempDir())

	_, err := store.Get(context.Background(), "users/u/reports/missing.pdf")
	assert.ErrorIs(t, err, objstore.ErrNotFound)
}

func TestFSStore_RejectsEscapingPaths(t *testing.T) {
	store := objstore.NewFSStore(t.TempDir())
	ctx := context.Background()

	for _, path := range []string{"../outside", "a/../../outside", "/etc/passwd"} {
		_, err := store.Get(ctx, path)
		assert.Error(t, err, "path %q", path)
		assert.NotErrorIs(t, err, objstore.ErrNotFound)

		assert.Error(t, store.Put(ctx, path, []byte("x"), ""), "path %q", path)
	}
}
