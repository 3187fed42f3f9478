package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/multiterm/internal/script"
)

func TestEveryThemeCoversEveryRole(t *testing.T) {
	require.Len(t, Names(), 6)
	for _, name := range Names() {
		th := Get(name)
		assert.Equal(t, name, th.Name)
		for _, role := range script.Roles() {
			assert.NotEmpty(t, th.Roles[role], "%s missing %s", name, role)
		}
		for field, v := range map[string]string{
			"Background": th.Background, "Surface": th.Surface, "TitleBar": th.TitleBar,
			"Border": th.Border, "BorderFocus": th.BorderFocus, "Text": th.Text,
		} {
			assert.NotEmpty(t, v, "%s.%s", name, field)
		}
	}
}

func TestGetFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultName, Get("Neon").Name)
}

func TestRoleColorFallsBackToPrimary(t *testing.T) {
	th := Get("Dracula")
	assert.Equal(t, th.Roles[script.RolePrimary], th.RoleColor("sparkle"))
	assert.Equal(t, th.Roles[script.RoleError], th.RoleColor(script.RoleError))
}

func TestNextCycles(t *testing.T) {
	assert.Equal(t, "Light", Next("Dark"))
	assert.Equal(t, "Dark", Next("Solarized Dark"))
	assert.Equal(t, "Dark", Next("unknown"))
}

func TestProviderNotifiesSubscribers(t *testing.T) {
	p := NewProvider("nope")
	assert.Equal(t, DefaultName, p.Name())

	var got []string
	unsubscribe := p.Subscribe(func(th Theme) { got = append(got, th.Name) })

	assert.Equal(t, "Light", p.Next().Name)
	assert.True(t, p.Set("Dracula"))
	assert.True(t, p.Set("Dracula"))
	assert.False(t, p.Set("Neon"))
	assert.Equal(t, []string{"Light", "Dracula"}, got)

	unsubscribe()
	p.Set("Minimal")
	assert.Len(t, got, 2)
	assert.Equal(t, "Minimal", p.Current().Name)
}
