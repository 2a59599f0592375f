package hangar

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeLockedScope indicates a registration into a locked scope
	CodeLockedScope = "LOCKED_SCOPE"

	// CodeDependencyNotFound indicates a name registered in neither the scope nor the global scope
	CodeDependencyNotFound = "DEPENDENCY_NOT_FOUND"

	// CodeMissingOption indicates a class configuration lacking a required key
	CodeMissingOption = "MISSING_OPTION"

	// CodeClassNotFound indicates the class loader could not provide a class
	CodeClassNotFound = "CLASS_NOT_FOUND"

	// CodeInterfaceNotSatisfied indicates a failed implement contract
	CodeInterfaceNotSatisfied = "INTERFACE_NOT_SATISFIED"

	// CodeAncestorNotSatisfied indicates a failed extend contract
	CodeAncestorNotSatisfied = "ANCESTOR_NOT_SATISFIED"

	// CodeUnknownDependencyType indicates a materialized entry with an unknown kind
	CodeUnknownDependencyType = "UNKNOWN_DEPENDENCY_TYPE"

	// CodeCircularDependency indicates a dependency that requires itself
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeTypeMismatch indicates a resolved instance of an unexpected type
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeInvalidDefinition indicates an empty or malformed definition
	CodeInvalidDefinition = "INVALID_DEFINITION"

	// CodeMethodNotFound indicates a setter the class does not declare
	CodeMethodNotFound = "METHOD_NOT_FOUND"

	// CodeArgumentBinding indicates a bound argument of the wrong type
	CodeArgumentBinding = "ARGUMENT_BINDING"

	// CodeDependencyError indicates a factory, constructor or setter failure
	CodeDependencyError = "DEPENDENCY_ERROR"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrDependencyNotFoundSentinel is a sentinel error for missing dependencies (for error checking).
var ErrDependencyNotFoundSentinel = errs.NewError(CodeDependencyNotFound, "dependency not found", nil)

// ErrLockedScopeSentinel is a sentinel error for locked scopes (for error checking).
var ErrLockedScopeSentinel = errs.NewError(CodeLockedScope, "scope is locked", nil)

// ErrCircularDependencySentinel is a sentinel error for circular dependency (for error checking).
var ErrCircularDependencySentinel = errs.NewError(CodeCircularDependency, "circular dependency", nil)

// ErrMissingOptionSentinel is a sentinel error for incomplete class configurations.
var ErrMissingOptionSentinel = errs.NewError(CodeMissingOption, "missing option", nil)

// ErrClassNotFoundSentinel is a sentinel error for classes the loader cannot provide.
var ErrClassNotFoundSentinel = errs.NewError(CodeClassNotFound, "class not found", nil)

// ErrInterfaceNotSatisfiedSentinel is a sentinel error for failed implement contracts.
var ErrInterfaceNotSatisfiedSentinel = errs.NewError(CodeInterfaceNotSatisfied, "interface not satisfied", nil)

// ErrAncestorNotSatisfiedSentinel is a sentinel error for failed extend contracts.
var ErrAncestorNotSatisfiedSentinel = errs.NewError(CodeAncestorNotSatisfied, "ancestor not satisfied", nil)

// ErrTypeMismatchSentinel is a sentinel error for type mismatch during resolution.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// ErrInvalidDefinitionSentinel is a sentinel error for rejected registrations.
var ErrInvalidDefinitionSentinel = errs.NewError(CodeInvalidDefinition, "invalid definition", nil)

// ErrArgumentBindingSentinel is a sentinel error for arguments of the wrong type.
var ErrArgumentBindingSentinel = errs.NewError(CodeArgumentBinding, "argument binding", nil)

// ErrDependencyErrorSentinel matches failures raised while building a dependency.
var ErrDependencyErrorSentinel = errs.NewError(CodeDependencyError, "dependency error", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrLockedScope creates an error for a registration into a locked scope
func ErrLockedScope(scope, name string) *errs.Error {
	return errs.NewError(
		CodeLockedScope,
		fmt.Sprintf("scope '%s' is locked, cannot register '%s'", scope, name),
		nil,
	).WithContext("scope", scope).
		WithContext("dependency", name).(*errs.Error)
}

// ErrDependencyNotFound creates an error for an unregistered dependency
func ErrDependencyNotFound(name, scope string) *errs.Error {
	return errs.NewError(
		CodeDependencyNotFound,
		fmt.Sprintf("dependency '%s' not found in scope '%s'", name, scope),
		nil,
	).WithContext("dependency", name).
		WithContext("scope", scope).(*errs.Error)
}

// ErrMissingOption creates an error for a class configuration lacking option
func ErrMissingOption(name, option string) *errs.Error {
	return errs.NewError(
		CodeMissingOption,
		fmt.Sprintf("dependency '%s' missing option: %s", name, option),
		nil,
	).WithContext("dependency", name).
		WithContext("option", option).(*errs.Error)
}

// ErrClassNotFound creates an error for a class the loader could not provide
func ErrClassNotFound(name, className string) *errs.Error {
	return errs.NewError(
		CodeClassNotFound,
		fmt.Sprintf("dependency '%s' class is not defined: %s", name, className),
		nil,
	).WithContext("dependency", name).
		WithContext("class", className).(*errs.Error)
}

// ErrInterfaceNotSatisfied creates an error for a failed implement contract
func ErrInterfaceNotSatisfied(name string, required []string) *errs.Error {
	return errs.NewError(
		CodeInterfaceNotSatisfied,
		fmt.Sprintf("dependency '%s' does not implement a required interface: %v", name, required),
		nil,
	).WithContext("dependency", name).
		WithContext("required", required).(*errs.Error)
}

// ErrAncestorNotSatisfied creates an error for a failed extend contract
func ErrAncestorNotSatisfied(name string, required []string) *errs.Error {
	return errs.NewError(
		CodeAncestorNotSatisfied,
		fmt.Sprintf("dependency '%s' does not extend a required class: %v", name, required),
		nil,
	).WithContext("dependency", name).
		WithContext("required", required).(*errs.Error)
}

// ErrUnknownDependencyType creates an error for an entry of unknown kind
func ErrUnknownDependencyType(name string, kind Kind) *errs.Error {
	return errs.NewError(
		CodeUnknownDependencyType,
		fmt.Sprintf("dependency '%s' has unknown type %d", name, int(kind)),
		nil,
	).WithContext("dependency", name).(*errs.Error)
}

// ErrCircularDependency creates an error for circular dependency detection
func ErrCircularDependency(cycle []string) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		fmt.Sprintf("circular dependency detected: %v", cycle),
		nil,
	).WithContext("cycle", cycle).(*errs.Error)
}

// ErrTypeMismatch creates an error for type mismatch during resolution
func ErrTypeMismatch(name string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("dependency '%s' type mismatch: got %T", name, actual),
		nil,
	).WithContext("dependency", name).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

// ErrInvalidDefinition creates an error for an empty or malformed definition
func ErrInvalidDefinition(name string) *errs.Error {
	return errs.NewError(
		CodeInvalidDefinition,
		fmt.Sprintf("dependency '%s' has an invalid definition", name),
		nil,
	).WithContext("dependency", name).(*errs.Error)
}

// ErrKindChange creates an error for re-registering a materialized dependency
// with a definition of another kind.
func ErrKindChange(name, scope string, materialized, requested Kind) *errs.Error {
	return errs.NewError(
		CodeInvalidDefinition,
		fmt.Sprintf("dependency '%s' is materialized as %s in scope '%s' and cannot become %s", name, materialized, scope, requested),
		nil,
	).WithContext("dependency", name).
		WithContext("scope", scope).
		WithContext("kind", materialized.String()).(*errs.Error)
}

// ErrMethodNotFound creates an error for a setter the class does not declare
func ErrMethodNotFound(className, method string) *errs.Error {
	return errs.NewError(
		CodeMethodNotFound,
		fmt.Sprintf("class '%s' has no method '%s'", className, method),
		nil,
	).WithContext("class", className).
		WithContext("method", method).(*errs.Error)
}

// ErrArgumentBinding creates an error for an argument of the wrong type
func ErrArgumentBinding(param, expected string, actual any) *errs.Error {
	return errs.NewError(
		CodeArgumentBinding,
		fmt.Sprintf("parameter '%s' expects %s, got %T", param, expected, actual),
		nil,
	).WithContext("param", param).
		WithContext("expected", expected).(*errs.Error)
}

// NewDependencyError creates an error for a failure while building a dependency
func NewDependencyError(name, operation string, cause error) *errs.Error {
	return errs.NewError(
		CodeDependencyError,
		fmt.Sprintf("dependency '%s' error during %s", name, operation),
		cause,
	).WithContext("dependency", name).
		WithContext("operation", operation).(*errs.Error)
}
