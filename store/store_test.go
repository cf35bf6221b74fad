package store_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/pogen/po"
	"github.com/vsariola/pogen/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddGetList(t *testing.T) {
	s := openStore(t)
	f := po.NewFactory(0)
	e, err := s.Add(f, po.GeneratorLib, "swell", "ws,t,60", "slow sine")
	require.NoError(t, err)
	assert.Equal(t, "waveSine, time, (constant, 60), 0, (constant, 0), (constant, 1)", e.Spec)
	_, err = s.Add(f, po.GeneratorLib, "bass", "bg,rw,(0,3,5)", "")
	require.NoError(t, err)
	got, err := s.Get(po.GeneratorLib, "swell")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "slow sine", got.Doc)
	list, err := s.List(po.GeneratorLib)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bass", list[0].Name)
	assert.Equal(t, "swell", list[1].Name)
	p, err := list[1].New(f)
	require.NoError(t, err)
	assert.Equal(t, e.Spec, p.Repr())
	empty, err := s.List(po.FilterLib)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOverwriteKeepsID(t *testing.T) {
	s := openStore(t)
	f := po.NewFactory(0)
	first, err := s.Add(f, po.RhythmLib, "groove", "l,((4,1,1))", "")
	require.NoError(t, err)
	second, err := s.Add(f, po.RhythmLib, "groove", "l,((2,1,1))", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.Created.Equal(second.Created))
	assert.NotEqual(t, first.Spec, second.Spec)
}

func TestInvalidSpecNotStored(t *testing.T) {
	s := openStore(t)
	_, err := s.Add(po.NewFactory(0), po.FilterLib, "bad", "ws,e,30", "")
	require.Error(t, err)
	_, err = s.Get(po.FilterLib, "bad")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	_, err := s.Add(po.NewFactory(0), po.FilterLib, "flip", "ob", "")
	require.NoError(t, err)
	require.NoError(t, s.Delete(po.FilterLib, "flip"))
	assert.True(t, errors.Is(s.Delete(po.FilterLib, "flip"), store.ErrNotFound))
}
