package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutGetInfo(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte("BEGIN:VCALENDAR")
	meta := &Metadata{ContentType: "text/calendar", Format: "ics", Days: 7}
	require.NoError(t, s.Put(ctx, "plans/2026-05-20/trip.ics", content, meta))

	got, err := s.Get(ctx, "plans/2026-05-20/trip.ics")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	info, err := s.GetInfo(ctx, "plans/2026-05-20/trip.ics")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.Equal(t, ComputeChecksum(content), info.Checksum)
	require.NotNil(t, info.Metadata)
	assert.Equal(t, 7, info.Metadata.Days)
}

func TestLocalStorage_Missing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, "nope.ics")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := s.Exists(ctx, "nope.ics")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Delete(ctx, "nope.ics"))
}

func TestLocalStorage_ListAndDelete(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "plans/b.xlsx", []byte("b"), &Metadata{}))
	require.NoError(t, s.Put(ctx, "plans/a.ics", []byte("a"), nil))
	require.NoError(t, s.Put(ctx, "other/c.json", []byte("c"), nil))

	keys, err := s.List(ctx, "plans/")
	require.NoError(t, err)
	assert.Equal(t, []string{"plans/a.ics", "plans/b.xlsx"}, keys)

	require.NoError(t, s.Delete(ctx, "plans/b.xlsx"))
	_, err = os.Stat(filepath.Join(s.BasePath(), "plans", "b.xlsx"+metaSuffix))
	assert.True(t, os.IsNotExist(err))

	keys, err = s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"other/c.json", "plans/a.ics"}, keys)
}

func TestLocalStorage_KeysStayInsideBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(base)
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), "../../escape.txt", []byte("x"), nil))
	_, err = os.Stat(filepath.Join(base, "escape.txt"))
	assert.NoError(t, err)

	assert.Error(t, s.Put(context.Background(), "", []byte("x"), nil))
}

func TestArtifactKey(t *testing.T) {
	at := time.Date(2026, 5, 20, 23, 30, 0, 0, time.FixedZone("CDT", -5*3600))
	assert.Equal(t, "plans/2026-05-21/trip.ics", ArtifactKey(at, "trip.ics"))
}
