package hangar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition_Kinds(t *testing.T) {
	assert.Equal(t, KindObject, Object(1).Kind())
	assert.Equal(t, KindCallback, Callback(func(ctx context.Context, opts Options) (any, error) { return nil, nil }).Kind())
	assert.Equal(t, KindConfig, Config(nil).Kind())

	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "callback", KindCallback.String())
	assert.Equal(t, "config", KindConfig.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestConfig_ConsumesScope(t *testing.T) {
	def := Config(Options{OptClassName: "Mailer", OptScope: "web"})

	assert.Equal(t, "web", def.Scope())
	assert.Equal(t, Options{OptClassName: "Mailer"}, def.Options())
	assert.Equal(t, "admin", def.In("admin").Scope())
	assert.Nil(t, Object(1).Options())
}

func TestOptions_Accessors(t *testing.T) {
	opts := Options{
		"name":   "mailer",
		"fresh":  true,
		"nested": map[string]any{"a": 1},
		"one":    "Transport",
		"many":   []any{"A", 2, "B"},
		"typed":  []string{"C"},
		"nil":    nil,
	}

	assert.Equal(t, "mailer", opts.String("name"))
	assert.Equal(t, "", opts.String("fresh"))
	assert.True(t, opts.Bool("fresh"))
	assert.False(t, opts.Bool("name"))
	assert.Equal(t, Options{"a": 1}, opts.Map("nested"))
	assert.Nil(t, opts.Map("name"))
	assert.Equal(t, []string{"Transport"}, opts.Strings("one"))
	assert.Equal(t, []string{"A", "B"}, opts.Strings("many"))
	assert.Equal(t, []string{"C"}, opts.Strings("typed"))
	assert.Nil(t, opts.Strings("nil"))

	var empty Options
	assert.Equal(t, "", empty.String("name"))
	assert.Nil(t, empty.Clone())
}

func TestClassConfig_Builder(t *testing.T) {
	def := NewClassConfig("Mailer", "app/mail").
		Implement("Transport").
		Implement("Comparable").
		Extend("Base").
		Param("host", "smtp.local").
		Param("port", 25).
		Setter("SetDebug", Options{"debug": true}).
		Setter("Reset", nil).
		Fresh().
		In("web").
		Definition()

	assert.Equal(t, KindConfig, def.Kind())
	assert.Equal(t, "web", def.Scope())

	opts := def.Options()
	assert.Equal(t, "Mailer", opts.String(OptClassName))
	assert.Equal(t, "app/mail", opts.String(OptClassPath))
	assert.Equal(t, []string{"Transport", "Comparable"}, opts.Strings(OptImplement))
	assert.Equal(t, []string{"Base"}, opts.Strings(OptExtend))
	assert.Equal(t, Options{"host": "smtp.local", "port": 25}, opts.Map(OptParams))
	assert.Equal(t, Options{"SetDebug": Options{"debug": true}, "Reset": Options{}}, opts.Map(OptSetters))
	assert.True(t, opts.Bool(OptFresh))
}

func TestClassConfig_Resolves(t *testing.T) {
	c := newTestContainer()
	require.NoError(t, c.Add("mailer", NewClassConfig("Mailer", "app/mail").
		Implement("Transport").
		Param("host", "builder").
		Setter("SetDebug", Options{"debug": true}).
		Definition()))

	mailer, err := Resolve[*testMailer](c, "mailer")
	require.NoError(t, err)
	assert.Equal(t, "builder", mailer.host)
	assert.True(t, mailer.debug)
}

func TestClass_Metadata(t *testing.T) {
	class, ok := func() (*Class, bool) {
		catalog := newTestCatalog()
		_ = catalog.Load("SMTPMailer", "app/mail")
		return catalog.Lookup("SMTPMailer")
	}()
	require.True(t, ok)

	assert.True(t, class.Implements("Transport", "Comparable"))
	assert.False(t, class.Implements("Transport", "Closer"))
	assert.True(t, class.Extends("Mailer"))
	assert.False(t, class.Extends("Logger"))
	assert.Equal(t, []string{"Transport", "Comparable", "BaseTransport", "Mailer", "SMTPMailer"}, class.matchers())

	params, err := class.Parameters(ConstructorMethod)
	require.NoError(t, err)
	assert.Equal(t, "host", params[0].Name)
	assert.True(t, params[1].Optional)
	assert.Equal(t, 25, params[1].Default)

	params, err = class.Parameters("SetDebug")
	require.NoError(t, err)
	assert.Equal(t, []Param{Required("debug")}, params)

	_, err = class.Parameters("Missing")
	assert.Error(t, err)
}
