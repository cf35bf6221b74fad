package presets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/pogen/po"
	"github.com/vsariola/pogen/presets"
)

func TestBuiltinPresetsCreate(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	all := presets.Load()
	require.NotEmpty(t, all)
	for _, p := range all {
		t.Run(p.Library.String()+"/"+p.Name, func(t *testing.T) {
			assert.False(t, p.User)
			assert.NotEmpty(t, p.Doc)
			_, err := p.New(po.NewFactory(0))
			assert.NoError(t, err)
		})
	}
}

func TestFind(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	p, ok := presets.Load().Find("Walking Bass")
	require.True(t, ok)
	assert.Equal(t, po.GeneratorLib, p.Library)
	_, ok = presets.Load().Find("no such preset")
	assert.False(t, ok)
}

func TestUserPresets(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())
	user := presets.Preset{Name: "walking bass", Library: po.GeneratorLib, Spec: "bg,oc,(0,12)"}
	require.NoError(t, presets.Save(user))
	p, ok := presets.Load().Find("walking bass")
	require.True(t, ok)
	assert.True(t, p.User, "a user preset shadows the builtin one")
	assert.Equal(t, "bg,oc,(0,12)", p.Spec)
	require.NoError(t, presets.Delete(user))
	p, ok = presets.Load().Find("walking bass")
	require.True(t, ok)
	assert.False(t, p.User)
}
