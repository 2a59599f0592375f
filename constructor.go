package hangar

import (
	"errors"
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// NewConstructor describes a Go constructor function. fn must return T or
// (T, error) and take exactly one argument per declared param, in order.
//
//	ctor, err := hangar.NewConstructor(NewMailer,
//	    hangar.Required("host"),
//	    hangar.Optional("port", 25),
//	)
func NewConstructor(fn any, params ...Param) (Constructor, error) {
	fnValue, fnType, err := analyzeFunc(fn, len(params))
	if err != nil {
		return Constructor{}, fmt.Errorf("constructor: %w", err)
	}
	if fnType.NumOut() == 0 || fnType.Out(0) == errorType {
		return Constructor{}, errors.New("constructor: must return at least one non-error value")
	}

	return Constructor{
		Params: params,
		New: func(args []any) (any, error) {
			in, err := coerceArgs(fnType, 0, params, args)
			if err != nil {
				return nil, err
			}
			return splitResults(fnValue.Call(in))
		},
	}, nil
}

// MustConstructor is NewConstructor that panics on an invalid function.
func MustConstructor(fn any, params ...Param) Constructor {
	ctor, err := NewConstructor(fn, params...)
	if err != nil {
		panic(err)
	}
	return ctor
}

// NewSetter describes a method expression such as (*Mailer).SetPort. The
// receiver is the first argument; the rest map to params in order. The method
// may return nothing or an error.
func NewSetter(method any, params ...Param) (Setter, error) {
	fnValue, fnType, err := analyzeFunc(method, len(params)+1)
	if err != nil {
		return Setter{}, fmt.Errorf("setter: %w", err)
	}
	if fnType.NumOut() > 1 || (fnType.NumOut() == 1 && fnType.Out(0) != errorType) {
		return Setter{}, errors.New("setter: must return nothing or error")
	}
	receiver := fnType.In(0)

	return Setter{
		Params: params,
		Apply: func(instance any, args []any) error {
			recv := reflect.ValueOf(instance)
			if !recv.IsValid() || !recv.Type().AssignableTo(receiver) {
				return fmt.Errorf("setter receiver: expected %s, got %T", receiver, instance)
			}
			in, err := coerceArgs(fnType, 1, params, args)
			if err != nil {
				return err
			}
			out := fnValue.Call(append([]reflect.Value{recv}, in...))
			if len(out) == 1 && !out[0].IsNil() {
				return out[0].Interface().(error)
			}
			return nil
		},
	}, nil
}

// MustSetter is NewSetter that panics on an invalid method.
func MustSetter(method any, params ...Param) Setter {
	setter, err := NewSetter(method, params...)
	if err != nil {
		panic(err)
	}
	return setter
}

func analyzeFunc(fn any, arity int) (reflect.Value, reflect.Type, error) {
	fnValue := reflect.ValueOf(fn)
	if !fnValue.IsValid() || fnValue.Kind() != reflect.Func || fnValue.IsNil() {
		return reflect.Value{}, nil, fmt.Errorf("expected a function, got %T", fn)
	}
	fnType := fnValue.Type()
	if fnType.IsVariadic() {
		return reflect.Value{}, nil, errors.New("variadic functions are not supported")
	}
	if fnType.NumIn() != arity {
		return reflect.Value{}, nil, fmt.Errorf("function takes %d arguments, %d declared", fnType.NumIn(), arity)
	}
	return fnValue, fnType, nil
}

// splitResults handles the (T) and (T, error) return shapes.
func splitResults(results []reflect.Value) (any, error) {
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		if err, ok := results[1].Interface().(error); ok && err != nil {
			return nil, err
		}
		return results[0].Interface(), nil
	default:
		return nil, fmt.Errorf("constructor must return (T) or (T, error), got %d return values", len(results))
	}
}

func coerceArgs(fnType reflect.Type, offset int, params []Param, args []any) ([]reflect.Value, error) {
	in := make([]reflect.Value, len(params))
	for i, param := range params {
		var arg any
		if i < len(args) {
			arg = args[i]
		}
		value, err := coerce(arg, fnType.In(i+offset))
		if err != nil {
			return nil, ErrArgumentBinding(param.Name, fnType.In(i+offset).String(), arg)
		}
		in[i] = value
	}
	return in, nil
}

// coerce converts v to t. A nil value becomes the zero value; numeric values
// convert between numeric kinds; lists convert element by element.
func coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if isNumeric(rv.Kind()) && isNumeric(t.Kind()) {
		return convertNumeric(rv, t)
	}
	if rv.Kind() == t.Kind() && rv.CanConvert(t) && t.Kind() != reflect.Slice {
		return rv.Convert(t), nil
	}
	if rv.Kind() == reflect.Slice && t.Kind() == reflect.Slice {
		out := reflect.MakeSlice(t, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := coerce(rv.Index(i).Interface(), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, t)
}

// convertNumeric converts between numeric kinds, refusing conversions that
// lose the integer part, truncate a fraction, overflow or flip the sign.
// Float targets only refuse overflow.
func convertNumeric(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	out := rv.Convert(t)
	if out.CanFloat() {
		if rv.CanFloat() && out.OverflowFloat(rv.Float()) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", rv.Interface(), t)
		}
		return out, nil
	}
	if out.Convert(rv.Type()).Interface() != rv.Interface() || sign(out) != sign(rv) {
		return reflect.Value{}, fmt.Errorf("%v does not fit %s", rv.Interface(), t)
	}
	return out, nil
}

func sign(v reflect.Value) int {
	switch {
	case v.CanInt():
		switch n := v.Int(); {
		case n < 0:
			return -1
		case n > 0:
			return 1
		}
	case v.CanUint():
		if v.Uint() > 0 {
			return 1
		}
	case v.CanFloat():
		switch f := v.Float(); {
		case f < 0:
			return -1
		case f > 0:
			return 1
		}
	}
	return 0
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
