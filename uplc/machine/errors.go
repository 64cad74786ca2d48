package machine

import "fmt"

// EvalError is the failure taxonomy returned alongside a (partial)
// ConsumedBudget and log list (§4.5 "Failure taxonomy (evaluator)").
type EvalError interface {
	error
	isEvalError()
}

type FreeVariableError struct{ Index int }

func (e *FreeVariableError) Error() string { return fmt.Sprintf("free variable at index %d", e.Index) }
func (*FreeVariableError) isEvalError()    {}

type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}
func (*TypeMismatchError) isEvalError() {}

type OutOfBudgetError struct{}

func (*OutOfBudgetError) Error() string { return "out of budget" }
func (*OutOfBudgetError) isEvalError()  {}

// UserErrorTerm is raised when the machine reduces an explicit Error
// term (spec.md §8 scenario 4).
type UserErrorTerm struct{}

func (*UserErrorTerm) Error() string { return "evaluation failure: (error)" }
func (*UserErrorTerm) isEvalError()  {}

type BuiltinFailureError struct {
	Name   string
	Reason string
}

func (e *BuiltinFailureError) Error() string {
	return fmt.Sprintf("builtin %s failed: %s", e.Name, e.Reason)
}
func (*BuiltinFailureError) isEvalError() {}
