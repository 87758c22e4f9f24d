package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(filepath.Join(t.TempDir(), "nested", "vidctl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestGetProgress_Empty(t *testing.T) {
	m := openTestManager(t)

	p, err := m.GetProgress("missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSaveProgress_VisibleBeforeFlush(t *testing.T) {
	m := openTestManager(t)
	m.debounce = time.Hour

	m.SaveProgress(Progress{MediaKey: "ep1", Position: 40 * time.Second})

	p, err := m.GetProgress("ep1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 40*time.Second, p.Position)

	stored, err := getProgress(m.db, "ep1")
	require.NoError(t, err)
	assert.Nil(t, stored, "nothing written before the debounce")
}

func TestSaveProgress_RoundTrip(t *testing.T) {
	m := openTestManager(t)
	updated := time.Unix(1_700_000_000, 0)

	m.SaveProgress(Progress{
		MediaKey:  "ep1",
		Position:  95*time.Second + 500*time.Millisecond,
		Duration:  120 * time.Second,
		Quality:   "720p",
		Speed:     1.5,
		Muted:     true,
		UpdatedAt: updated,
	})
	require.NoError(t, m.Flush())

	p, err := getProgress(m.db, "ep1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 95*time.Second+500*time.Millisecond, p.Position)
	assert.Equal(t, 120*time.Second, p.Duration)
	assert.Equal(t, "720p", p.Quality)
	assert.InDelta(t, 1.5, p.Speed, 0.0001)
	assert.True(t, p.Muted)
	assert.True(t, p.UpdatedAt.Equal(updated))
}

func TestSaveProgress_Defaults(t *testing.T) {
	m := openTestManager(t)
	now := time.Unix(1_700_000_500, 0)
	m.now = func() time.Time { return now }

	m.SaveProgress(Progress{MediaKey: "ep1"})
	require.NoError(t, m.Flush())

	p, err := m.GetProgress("ep1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Empty(t, p.Quality)
	assert.InDelta(t, 1.0, p.Speed, 0.0001, "unset speed is stored as 1")
	assert.True(t, p.UpdatedAt.Equal(now))
}

func TestSaveProgress_IgnoresEmptyKey(t *testing.T) {
	m := openTestManager(t)

	m.SaveProgress(Progress{Position: time.Second})

	assert.Empty(t, m.pending)
}

func TestSaveProgress_LatestWins(t *testing.T) {
	m := openTestManager(t)
	m.debounce = time.Hour

	for _, pos := range []time.Duration{10, 20, 30} {
		m.SaveProgress(Progress{MediaKey: "ep1", Position: pos * time.Second})
	}
	require.NoError(t, m.Flush())

	p, err := getProgress(m.db, "ep1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 30*time.Second, p.Position)
}

func TestSaveProgress_DebouncedWrite(t *testing.T) {
	m := openTestManager(t)
	m.debounce = 10 * time.Millisecond

	m.SaveProgress(Progress{MediaKey: "ep1", Position: 5 * time.Second})

	require.Eventually(t, func() bool {
		p, err := getProgress(m.db, "ep1")
		return err == nil && p != nil && p.Position == 5*time.Second
	}, 2*time.Second, 10*time.Millisecond)
}

func TestListProgress_OrderAndLimit(t *testing.T) {
	m := openTestManager(t)
	base := time.Unix(1_700_000_000, 0)

	m.SaveProgress(Progress{MediaKey: "old", UpdatedAt: base})
	m.SaveProgress(Progress{MediaKey: "new", UpdatedAt: base.Add(2 * time.Hour)})
	m.SaveProgress(Progress{MediaKey: "mid", UpdatedAt: base.Add(time.Hour)})

	all, err := m.ListProgress(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].MediaKey, all[1].MediaKey, all[2].MediaKey})

	top, err := m.ListProgress(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "new", top[0].MediaKey)
}

func TestDeleteProgress(t *testing.T) {
	m := openTestManager(t)
	m.debounce = time.Hour

	m.SaveProgress(Progress{MediaKey: "stored"})
	require.NoError(t, m.Flush())
	m.SaveProgress(Progress{MediaKey: "pending"})

	require.NoError(t, m.DeleteProgress("stored"))
	require.NoError(t, m.DeleteProgress("pending"))

	for _, key := range []string{"stored", "pending"} {
		p, err := m.GetProgress(key)
		require.NoError(t, err)
		assert.Nil(t, p, key)
	}
	all, err := m.ListProgress(0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestClose_FlushesPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidctl.db")
	m, err := OpenPath(path)
	require.NoError(t, err)
	m.debounce = time.Hour

	m.SaveProgress(Progress{MediaKey: "ep1", Position: 7 * time.Second})
	require.NoError(t, m.Close())

	reopened, err := OpenPath(path)
	require.NoError(t, err)
	defer reopened.Close()

	p, err := reopened.GetProgress("ep1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 7*time.Second, p.Position)
}

func TestMock(t *testing.T) {
	m := NewMock()
	base := time.Unix(1_700_000_000, 0)

	m.SaveProgress(Progress{MediaKey: "a", UpdatedAt: base})
	m.SaveProgress(Progress{MediaKey: "b", UpdatedAt: base.Add(time.Minute)})
	m.SaveProgress(Progress{})

	assert.Equal(t, 2, m.Saves())
	list, err := m.ListProgress(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].MediaKey)

	require.NoError(t, m.DeleteProgress("a"))
	p, err := m.GetProgress("a")
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, m.Close())
	assert.True(t, m.IsClosed())
}
