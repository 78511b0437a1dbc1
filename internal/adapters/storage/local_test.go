package storage_test

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/retifica-be/internal/adapters/storage"
	"github.com/ammerola/retifica-be/test/helpers"
)

func TestLocalStorage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())
	require.NoError(t, err)

	location, err := store.Upload(ctx, "exports/relatorio_20250101_120000.csv", strings.NewReader("a;b"), "text/csv")
	require.NoError(t, err)

	f, err := os.Open(location)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, "a;b", string(data))

	url, err := store.GetPresignedURL(ctx, "exports/relatorio_20250101_120000.csv", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))

	_, err = store.Upload(ctx, "other/x.txt", strings.NewReader("x"), "")
	require.NoError(t, err)

	objects, err := store.List(ctx, "exports/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "exports/relatorio_20250101_120000.csv", objects[0].Key)
	assert.EqualValues(t, 3, objects[0].Size)

	require.NoError(t, store.Delete(ctx, "exports/relatorio_20250101_120000.csv"))
	require.NoError(t, store.Delete(ctx, "exports/relatorio_20250101_120000.csv"), "deleting twice is fine")

	objects, err = store.List(ctx, "exports/")
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestLocalStorage_KeysStayUnderBasePath(t *testing.T) {
	base := t.TempDir()
	store, err := storage.NewLocalStorage(base, helpers.TestLogger())
	require.NoError(t, err)

	location, err := store.Upload(context.Background(), "../../escape.txt", strings.NewReader("x"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(location, base))

	_, err = store.Upload(context.Background(), "", strings.NewReader("x"), "")
	assert.Error(t, err)
}
