package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macremote/logging"
)

func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	mem, err := OpenInMemoryBadgerStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mem.Close() })

	disk, err := OpenBadgerStore(t.TempDir(), logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = disk.Close() })

	return map[string]Store{
		"memory":          NewMemoryStore(),
		"badger-inmemory": mem,
		"badger-disk":     disk,
	}
}

func TestStoreGetSetClear(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(KeyAPIURL)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(KeyAPIURL, "http://10.0.0.5:8080"))
			v, ok, err := store.Get(KeyAPIURL)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "http://10.0.0.5:8080", v)

			require.NoError(t, store.Clear(KeyAPIURL))
			_, ok, err = store.Get(KeyAPIURL)
			require.NoError(t, err)
			assert.False(t, ok)

			// clearing an absent key is fine
			assert.NoError(t, store.Clear(KeyAuthToken))
		})
	}
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadgerStore(dir, logging.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyAuthToken, "secret"))
	require.NoError(t, s.Close())

	_, _, err = s.Get(KeyAuthToken)
	assert.ErrorIs(t, err, ErrClosed)

	s, err = OpenBadgerStore(dir, logging.NewNopLogger())
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret", v)
}

func TestSettingsAPIURL(t *testing.T) {
	s := New(NewMemoryStore())

	require.NoError(t, s.SetAPIURL("  http://192.168.1.100:8080/ "))
	got, err := s.APIURL()
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.100:8080", got)

	assert.ErrorIs(t, s.SetAPIURL(""), ErrEmptyValue)
	assert.ErrorIs(t, s.SetAPIURL("192.168.1.100:8080"), ErrInvalidURL)
	assert.ErrorIs(t, s.SetAPIURL("ftp://host"), ErrInvalidURL)

	got, err = s.APIURL()
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.100:8080", got, "rejected values must not overwrite")
}

func TestSettingsConfiguredAndClear(t *testing.T) {
	s := New(NewMemoryStore())

	ok, err := s.IsConfigured()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetAPIURL("http://10.0.0.2:8080"))
	ok, _ = s.IsConfigured()
	assert.False(t, ok)

	assert.ErrorIs(t, s.SetAuthToken("   "), ErrEmptyValue)
	require.NoError(t, s.SetAuthToken("tok"))
	ok, _ = s.IsConfigured()
	assert.True(t, ok)

	require.NoError(t, s.ClearAll())
	ok, _ = s.IsConfigured()
	assert.False(t, ok)
	token, _ := s.AuthToken()
	assert.Empty(t, token)
}
