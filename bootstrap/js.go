package bootstrap

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsEvaluator struct{}

// NewJSEvaluator constructs an Evaluator backed by goja. Each guard runs in
// a fresh runtime.
func NewJSEvaluator() Evaluator {
	return jsEvaluator{}
}

func (jsEvaluator) Evaluate(expression string, env Env) (bool, error) {
	if expression == "" {
		return false, wrapEvaluationError(EngineJS, expression, env.Scope, fmt.Errorf("expression must not be empty"))
	}
	vm := goja.New()
	for key, value := range env.binding() {
		if err := vm.Set(key, value); err != nil {
			return false, wrapEvaluationError(EngineJS, expression, env.Scope, err)
		}
	}
	value, err := vm.RunString(fmt.Sprintf("(function(){ return (%s); })()", expression))
	if err != nil {
		return false, wrapEvaluationError(EngineJS, expression, env.Scope, err)
	}
	return asBool(EngineJS, expression, env, value.Export())
}
