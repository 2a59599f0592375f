package hangar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/go-utils/errs"
)

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func nodeConfig(extra Options) Definition {
	return Config(Merge(Options{OptClassName: "Node", OptClassPath: "app/node"}, extra))
}

func TestDependencyGraph_TopologicalSort(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode("mailer", []string{"logger", "config"})
	g.AddNode("logger", []string{"config"})
	g.AddNode("config", nil)
	g.AddNode("queue", []string{"external"})

	order, err := g.TopologicalSort()
	require.NoError(t, err)

	assert.Len(t, order, 4)
	assert.Less(t, indexOf(order, "config"), indexOf(order, "logger"))
	assert.Less(t, indexOf(order, "logger"), indexOf(order, "mailer"))
	assert.True(t, g.HasNode("queue"))
	assert.False(t, g.HasNode("external"))
	assert.Equal(t, []string{"config"}, g.GetDependencies("logger"))
	assert.Nil(t, g.GetDependencies("external"))
}

func TestDependencyGraph_Cycle(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode("a", []string{"b"})
	g.AddNode("b", []string{"c"})
	g.AddNode("c", []string{"a"})

	_, err := g.TopologicalSort()
	assert.ErrorIs(t, err, ErrCircularDependencySentinel)

	var cycleErr *errs.Error
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycleErr.GetContext()["cycle"])

	self := NewDependencyGraph()
	self.AddNode("a", []string{"a"})
	_, err = self.TopologicalSort()
	assert.ErrorIs(t, err, ErrCircularDependencySentinel)
}

func TestContainer_Dependencies(t *testing.T) {
	c := newTestContainer()
	require.NoError(t, c.Add("a", nodeConfig(Options{
		OptParams: Options{"next": c.Load("b", nil)},
		OptSetters: Options{
			"Link": Options{"target": c.Load("c", nil), "again": c.Load("b", nil)},
		},
	})))
	require.NoError(t, c.Add("obj", Object(1)))

	assert.Equal(t, []string{"b", "c"}, c.Dependencies("a", DefaultScope))
	assert.Empty(t, c.Dependencies("obj", DefaultScope))
	assert.Empty(t, c.Dependencies("missing", DefaultScope))
}

func TestContainer_DependenciesLayered(t *testing.T) {
	c := newTestContainer()
	require.NoError(t, c.Add("a", nodeConfig(Options{
		OptScope:  GlobalScope,
		OptParams: Options{"next": c.Load("global", nil)},
	})))
	require.NoError(t, c.Add("a", Config(Options{
		OptScope:  "web",
		OptParams: Options{"next": c.Load("web", nil)},
	})))

	assert.Equal(t, []string{"global"}, c.Dependencies("a", DefaultScope))
	assert.Equal(t, []string{"web"}, c.Dependencies("a", "web"))
}

func TestContainer_Validate(t *testing.T) {
	c := newTestContainer()
	require.NoError(t, c.Add("a", nodeConfig(Options{OptParams: Options{"next": c.Load("b", nil)}})))
	require.NoError(t, c.Add("b", nodeConfig(nil)))
	assert.NoError(t, c.Validate(DefaultScope))

	require.NoError(t, c.Set("b", Config(Options{OptParams: Options{"next": c.Load("a", nil)}})))
	assert.ErrorIs(t, c.Validate(DefaultScope), ErrCircularDependencySentinel)
	assert.NoError(t, c.Validate("web"))
}

func TestContainer_Warm(t *testing.T) {
	c := newTestContainer()
	calls := 0
	require.NoError(t, c.Add("root", nodeConfig(Options{OptParams: Options{"next": c.Load("leaf", nil)}})))
	require.NoError(t, c.Add("leaf", nodeConfig(nil)))
	require.NoError(t, c.Add("fresh", nodeConfig(Options{OptFresh: true})))
	require.NoError(t, c.Add("shared", nodeConfig(Options{OptScope: GlobalScope})))
	require.NoError(t, c.Add("factory", Callback(func(ctx context.Context, opts Options) (any, error) {
		calls++
		return 1, nil
	})))

	require.NoError(t, c.Warm(context.Background(), DefaultScope))

	assert.True(t, c.Inspect("root", DefaultScope).Cached)
	assert.True(t, c.Inspect("leaf", DefaultScope).Cached)
	assert.True(t, c.Inspect("shared", DefaultScope).Cached)
	assert.False(t, c.Inspect("shared", GlobalScope).Cached)
	assert.False(t, c.Inspect("fresh", DefaultScope).Cached)
	assert.Equal(t, 0, calls)

	root, err := Resolve[*testNode](c, "root")
	require.NoError(t, err)
	leaf, err := c.Get("leaf", nil)
	require.NoError(t, err)
	assert.Same(t, leaf, root.next)
}

func TestContainer_WarmStopsOnError(t *testing.T) {
	c := newTestContainer()
	require.NoError(t, c.Add("broken", Config(Options{OptClassName: "Node"})))

	err := c.Warm(context.Background(), DefaultScope)
	assert.ErrorIs(t, err, ErrMissingOptionSentinel)

	require.NoError(t, c.Add("a", nodeConfig(Options{OptParams: Options{"next": c.Load("a", nil)}})))
	assert.ErrorIs(t, c.Warm(context.Background(), DefaultScope), ErrCircularDependencySentinel)
}
