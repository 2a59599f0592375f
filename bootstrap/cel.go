package bootstrap

import (
	"fmt"
	"sync"

	celgo "github.com/google/cel-go/cel"
)

type celEvaluator struct {
	env      *celgo.Env
	programs map[string]celgo.Program
	mu       sync.Mutex
}

// NewCELEvaluator constructs an Evaluator backed by cel-go. Guards see
// "env" as map(string, string) and "scope" as string.
func NewCELEvaluator() (Evaluator, error) {
	env, err := celgo.NewEnv(
		celgo.Variable("env", celgo.MapType(celgo.StringType, celgo.StringType)),
		celgo.Variable("scope", celgo.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: cel environment: %w", err)
	}
	return &celEvaluator{env: env, programs: make(map[string]celgo.Program)}, nil
}

func (e *celEvaluator) Evaluate(expression string, env Env) (bool, error) {
	if expression == "" {
		return false, wrapEvaluationError(EngineCEL, expression, env.Scope, fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return false, wrapEvaluationError(EngineCEL, expression, env.Scope, err)
	}
	out, _, err := program.Eval(env.binding())
	if err != nil {
		return false, wrapEvaluationError(EngineCEL, expression, env.Scope, err)
	}
	return asBool(EngineCEL, expression, env, out.Value())
}

func (e *celEvaluator) loadOrCompile(expression string) (celgo.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if program, ok := e.programs[expression]; ok {
		return program, nil
	}
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	program, err := e.env.Program(ast)
	if err != nil {
		return nil, err
	}
	e.programs[expression] = program
	return program, nil
}
