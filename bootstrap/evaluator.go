package bootstrap

import (
	"errors"
	"fmt"
	"strings"
)

// Guard engines accepted in the "engine" field of a definitions file.
const (
	EngineExpr = "expr"
	EngineCEL  = "cel"
	EngineJS   = "js"
)

// Env is what a guard expression can see: the process environment as "env"
// and the scope the entry registers into as "scope".
type Env struct {
	Vars  map[string]string
	Scope string
}

func (e Env) binding() map[string]any {
	vars := e.Vars
	if vars == nil {
		vars = map[string]string{}
	}
	return map[string]any{
		"env":   vars,
		"scope": e.Scope,
	}
}

// Evaluator decides whether a guarded entry applies.
type Evaluator interface {
	Evaluate(expression string, env Env) (bool, error)
}

// NewEvaluator returns the evaluator for engine; "" selects expr.
func NewEvaluator(engine string) (Evaluator, error) {
	switch strings.ToLower(engine) {
	case "", EngineExpr:
		return NewExprEvaluator(), nil
	case EngineCEL:
		return NewCELEvaluator()
	case EngineJS:
		return NewJSEvaluator(), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown guard engine %q", engine)
	}
}

// EvaluationError captures the guard that failed alongside the engine error.
type EvaluationError struct {
	Engine string
	Expr   string
	Scope  string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("bootstrap: %s guard expr=%q scope=%s: %v", e.Engine, e.Expr, e.Scope, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapEvaluationError(engine, expr, scope string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Scope:  scope,
		Err:    err,
	}
}

func asBool(engine, expression string, env Env, out any) (bool, error) {
	b, ok := out.(bool)
	if !ok {
		return false, wrapEvaluationError(engine, expression, env.Scope, fmt.Errorf("guard must yield a boolean, got %T", out))
	}
	return b, nil
}
