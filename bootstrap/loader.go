// Package bootstrap registers dependencies into a hangar container from a
// YAML definitions file.
//
// A definitions file lists dependencies, observers and locked scopes:
//
//	engine: expr
//	scope: default
//	dependencies:
//	  - name: mailer
//	    merge: true
//	    when: env.APP_ENV == "production"
//	    className: Mailer
//	    classPath: app/mail
//	    params:
//	      host: smtp.local
//	      logger: { $ref: logger }
//	      dsn: { $env: MAIL_DSN }
//	observers:
//	  - classes: [Transport]
//	    options: { params: { timeout: 5 } }
//	locked: [default]
//
// Every dependency entry other than name, scope, merge and when is the class
// configuration itself.
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xraph/hangar"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is a decoded definitions file.
type File struct {
	Engine       string            `yaml:"engine"`
	Scope        string            `yaml:"scope"`
	Dependencies []DependencyEntry `yaml:"dependencies"`
	Observers    []ObserverEntry   `yaml:"observers"`
	Locked       []string          `yaml:"locked"`
}

// DependencyEntry is one registration. Options holds every key that is not
// one of the entry's own fields.
type DependencyEntry struct {
	Name    string         `yaml:"name"`
	Scope   string         `yaml:"scope"`
	Merge   bool           `yaml:"merge"`
	When    string         `yaml:"when"`
	Options map[string]any `yaml:",inline"`
}

// ObserverEntry attaches options to a set of classes.
type ObserverEntry struct {
	Classes []string       `yaml:"classes"`
	Scope   string         `yaml:"scope"`
	When    string         `yaml:"when"`
	Options map[string]any `yaml:"options"`
}

// Option configures loading.
type Option func(*loader)

// WithEnvFiles sets the .env files applied before guards are evaluated.
// Defaults to ".env".
func WithEnvFiles(files ...string) Option {
	return func(l *loader) {
		l.envFiles = files
	}
}

// WithEvaluator overrides the guard engine named in the file.
func WithEvaluator(evaluator Evaluator) Option {
	return func(l *loader) {
		l.evaluator = evaluator
	}
}

// WithLogger sets the logger. Defaults to the container's.
func WithLogger(logger *zap.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

type loader struct {
	envFiles  []string
	evaluator Evaluator
	logger    *zap.Logger
}

func newLoader(c *hangar.Container, opts []Option) *loader {
	l := &loader{envFiles: []string{".env"}}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.logger == nil {
		l.logger = c.Logger()
	}
	return l
}

// Locate returns the definitions file for root: the path in HANGAR_CONFIG
// when set, else config/dependency.yaml or config/dependency.yml under root.
// It returns "" when there is none.
func Locate(root string) (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	for _, name := range []string{"dependency.yaml", "dependency.yml"} {
		path := filepath.Join(root, "config", name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

// LoadDir loads the definitions file found by Locate. It reports whether a
// file was loaded; having none is not an error.
func LoadDir(c *hangar.Container, root string, opts ...Option) (bool, error) {
	path, err := Locate(root)
	if err != nil {
		return false, fmt.Errorf("bootstrap: locate definitions: %w", err)
	}
	if path == "" {
		c.Logger().Debug("no definitions file", zap.String("root", root))
		return false, nil
	}
	if err := Load(c, path, opts...); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads the definitions file at path into c.
func Load(c *hangar.Container, path string, opts ...Option) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("bootstrap: read %s: %w", path, err)
	}
	file, err := Parse(data)
	if err != nil {
		return fmt.Errorf("bootstrap: %s: %w", path, err)
	}
	return Apply(c, file, opts...)
}

// Parse decodes a definitions file.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode definitions: %w", err)
	}
	return &file, nil
}

// Apply registers the contents of file into c: dependencies in order, then
// observers, then locks, and finally the ambient scope.
func Apply(c *hangar.Container, file *File, opts ...Option) error {
	l := newLoader(c, opts)

	env, err := loadEnvironment(l.envFiles, l.logger)
	if err != nil {
		return fmt.Errorf("bootstrap: load env: %w", err)
	}

	evaluator := l.evaluator
	if evaluator == nil {
		if evaluator, err = NewEvaluator(file.Engine); err != nil {
			return err
		}
	}

	for i, dep := range file.Dependencies {
		if err := l.register(c, evaluator, env, dep); err != nil {
			return fmt.Errorf("bootstrap: dependency %d (%s): %w", i, dep.Name, err)
		}
	}

	for i, obs := range file.Observers {
		if err := l.observe(c, evaluator, env, obs); err != nil {
			return fmt.Errorf("bootstrap: observer %d %v: %w", i, obs.Classes, err)
		}
	}

	for _, scope := range file.Locked {
		c.Lock(scope)
	}

	if scope := env[EnvScope]; scope != "" {
		c.SetScope(scope)
	} else if file.Scope != "" {
		c.SetScope(file.Scope)
	}

	l.logger.Info("definitions loaded",
		zap.Int("dependencies", len(file.Dependencies)),
		zap.Int("observers", len(file.Observers)),
		zap.Strings("locked", file.Locked),
		zap.String("scope", c.Scope()),
	)

	return nil
}

func (l *loader) register(c *hangar.Container, evaluator Evaluator, env map[string]string, dep DependencyEntry) error {
	if dep.Name == "" {
		return errors.New("name is required")
	}

	scope := dep.Scope
	if scope == "" {
		scope = c.Scope()
	}
	ok, err := l.guard(evaluator, dep.When, env, scope)
	if err != nil {
		return err
	}
	if !ok {
		l.logger.Debug("dependency skipped", zap.String("dependency", dep.Name), zap.String("when", dep.When))
		return nil
	}

	opts, err := convertOptions(c, env, dep.Options)
	if err != nil {
		return err
	}
	def := hangar.Config(opts).In(scope)

	if dep.Merge {
		return c.Set(dep.Name, def)
	}
	return c.Add(dep.Name, def)
}

func (l *loader) observe(c *hangar.Container, evaluator Evaluator, env map[string]string, obs ObserverEntry) error {
	if len(obs.Classes) == 0 {
		return errors.New("classes are required")
	}

	scope := obs.Scope
	if scope == "" {
		scope = c.Scope()
	}
	ok, err := l.guard(evaluator, obs.When, env, scope)
	if err != nil {
		return err
	}
	if !ok {
		l.logger.Debug("observer skipped", zap.Strings("classes", obs.Classes), zap.String("when", obs.When))
		return nil
	}

	opts, err := convertOptions(c, env, obs.Options)
	if err != nil {
		return err
	}
	c.ObserveIn(scope, obs.Classes, opts)
	return nil
}

func (l *loader) guard(evaluator Evaluator, when string, env map[string]string, scope string) (bool, error) {
	if when == "" {
		return true, nil
	}
	return evaluator.Evaluate(when, Env{Vars: env, Scope: scope})
}
