package bootstrap

import (
	"fmt"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// exprEvaluator executes guards using github.com/expr-lang/expr.
type exprEvaluator struct {
	programs map[string]*exprvm.Program
	mu       sync.Mutex
}

// NewExprEvaluator constructs an Evaluator backed by expr-lang/expr.
func NewExprEvaluator() Evaluator {
	return &exprEvaluator{programs: make(map[string]*exprvm.Program)}
}

func (e *exprEvaluator) Evaluate(expression string, env Env) (bool, error) {
	if expression == "" {
		return false, wrapEvaluationError(EngineExpr, expression, env.Scope, fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return false, wrapEvaluationError(EngineExpr, expression, env.Scope, err)
	}
	out, err := exprlang.Run(program, env.binding())
	if err != nil {
		return false, wrapEvaluationError(EngineExpr, expression, env.Scope, err)
	}
	return asBool(EngineExpr, expression, env, out)
}

func (e *exprEvaluator) loadOrCompile(expression string) (*exprvm.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if program, ok := e.programs[expression]; ok {
		return program, nil
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(Env{}.binding()),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, err
	}
	e.programs[expression] = program
	return program, nil
}
