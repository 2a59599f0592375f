package hangar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/go-utils/errs"
)

func TestCycle_ThroughReferences(t *testing.T) {
	c := newTestContainer()
	require.NoError(t, c.Add("a", Config(Options{
		OptClassName: "Node", OptClassPath: "app/node",
		OptParams: Options{"next": c.Load("b", nil)},
	})))
	require.NoError(t, c.Add("b", Config(Options{
		OptClassName: "Node", OptClassPath: "app/node",
		OptParams: Options{"next": c.Load("a", nil)},
	})))

	_, err := c.Get("a", nil)
	assert.ErrorIs(t, err, ErrCircularDependencySentinel)

	var cycleErr *errs.Error
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"a", "b", "a"}, cycleErr.GetContext()["cycle"])
}

func TestCycle_SelfThroughCallback(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("self", Callback(func(ctx context.Context, opts Options) (any, error) {
		return c.GetContext(ctx, "self", nil)
	})))

	_, err := c.Get("self", nil)
	assert.ErrorIs(t, err, ErrCircularDependencySentinel)
}

func TestCycle_SameNameDifferentScope(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("svc", Object("global").In(GlobalScope)))
	require.NoError(t, c.Add("svc", Callback(func(ctx context.Context, opts Options) (any, error) {
		return c.GetContext(ctx, "svc", Options{OptScope: GlobalScope})
	})))

	v, err := c.Get("svc", nil)
	require.NoError(t, err)
	assert.Equal(t, "global", v)
}

func TestCycle_ChainIsPerResolution(t *testing.T) {
	c := newTestContainer()
	require.NoError(t, c.Add("leaf", Config(Options{OptClassName: "Node", OptClassPath: "app/node"})))
	require.NoError(t, c.Add("left", Config(Options{
		OptClassName: "Node", OptClassPath: "app/node",
		OptParams: Options{"next": c.Load("leaf", nil)},
	})))
	require.NoError(t, c.Add("root", Config(Options{
		OptClassName: "Node", OptClassPath: "app/node",
		OptParams: Options{"next": c.Load("left", nil)},
		OptSetters: Options{},
	})))

	root, err := Resolve[*testNode](c, "root")
	require.NoError(t, err)

	left := root.next.(*testNode)
	leaf, err := c.Get("leaf", nil)
	require.NoError(t, err)
	assert.Same(t, leaf, left.next)
}

func TestResolutionPath(t *testing.T) {
	c := New()
	var path []string
	require.NoError(t, c.Add("inner", Callback(func(ctx context.Context, opts Options) (any, error) {
		path = ResolutionPath(ctx)
		return 1, nil
	})))
	require.NoError(t, c.Add("outer", Callback(func(ctx context.Context, opts Options) (any, error) {
		return c.GetContext(ctx, "inner", nil)
	})))

	_, err := c.Get("outer", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, path)
	assert.Empty(t, ResolutionPath(context.Background()))
}

func TestWithCycleDetection_Disabled(t *testing.T) {
	c := New(WithCycleDetection(false))
	var path []string
	require.NoError(t, c.Add("svc", Callback(func(ctx context.Context, opts Options) (any, error) {
		path = ResolutionPath(ctx)
		return 1, nil
	})))

	_, err := c.Get("svc", nil)
	require.NoError(t, err)
	assert.Empty(t, path)
}
