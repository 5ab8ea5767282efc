package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(Config{Path: filepath.Join(t.TempDir(), "acai.db")})
	if err != nil {
		t.Skipf("skipping sqlite test: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStorageBlobRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStorage(t)

	require.NoError(t, s.Ping(ctx))

	_, ok, err := s.Get(ctx, "@MaeEFilha:menuItems")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "@MaeEFilha:menuItems", `[]`))
	require.NoError(t, s.Set(ctx, "@MaeEFilha:menuItems", `[{"id":"1"}]`))

	v, ok, err := s.Get(ctx, "@MaeEFilha:menuItems")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)
}

func TestStorageKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := openStorage(t)

	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "b", "2"))

	a, _, err := s.Get(ctx, "a")
	require.NoError(t, err)
	b, _, err := s.Get(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, "1", a)
	assert.Equal(t, "2", b)
}
