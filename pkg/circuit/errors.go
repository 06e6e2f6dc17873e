package circuit

import "errors"

// Sentinel errors, one per failure kind a caller might want to test for
// with errors.Is. Construction and evaluation paths wrap these with
// fmt.Errorf("...: %w", ErrXxx) to attach context.
var (
	ErrParameter           = errors.New("circuit: invalid parameter")
	ErrArity               = errors.New("circuit: wrong number of incoming nodes")
	ErrForeignNode         = errors.New("circuit: node belongs to a different circuit")
	ErrDuplicateInput      = errors.New("circuit: input name already registered")
	ErrInvalidConstant     = errors.New("circuit: value cannot be converted to a constant")
	ErrInputArity          = errors.New("circuit: wrong number of evaluation inputs")
	ErrIndex               = errors.New("circuit: index out of range")
	ErrHashCollision       = errors.New("circuit: node cache hash collision")
	ErrUnhashableOperation = errors.New("circuit: operation is not cacheable")
	ErrNotIterable         = errors.New("circuit: value is not iterable into nodes")
)
