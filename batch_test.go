package hangar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAll(t *testing.T) {
	c := New()

	err := AddAll(c,
		Dependency("obj", Object(&testService{value: "obj"})),
		Dependency("factory", Callback(func(ctx context.Context, opts Options) (any, error) {
			return &testService{value: "factory"}, nil
		})),
		Dependency("cfg", Config(Options{"a": 1}).In("web")),
	)
	require.NoError(t, err)

	assert.True(t, c.HasIn("obj", DefaultScope))
	assert.True(t, c.HasIn("factory", DefaultScope))
	assert.True(t, c.HasIn("cfg", "web"))

	svc, err := Resolve[*testService](c, "factory")
	require.NoError(t, err)
	assert.Equal(t, "factory", svc.value)
}

func TestAddAll_StopsAtFirstError(t *testing.T) {
	c := New()
	c.Lock("web")

	err := AddAll(c,
		Dependency("first", Object(1)),
		Dependency("locked", Object(2).In("web")),
		Dependency("never", Object(3)),
	)
	assert.ErrorIs(t, err, ErrLockedScopeSentinel)
	assert.True(t, c.Has("first"))
	assert.False(t, c.Has("never"))
}

func TestAddAll_Empty(t *testing.T) {
	assert.NoError(t, AddAll(New()))
}

func TestSetAll_Merges(t *testing.T) {
	c := New()

	err := SetAll(c,
		Dependency("cfg", Config(Options{"a": Options{"x": 1}})),
		Dependency("cfg", Config(Options{"a": Options{"y": 2}})),
	)
	require.NoError(t, err)

	def, ok := c.Definition("cfg", DefaultScope)
	require.True(t, ok)
	assert.Equal(t, Options{"x": 1, "y": 2}, def.Options().Map("a"))

	assert.ErrorIs(t, SetAll(c, Dependency("", Object(1))), ErrInvalidDefinitionSentinel)
}
