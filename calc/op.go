package calc

import (
	"errors"
	"math"
	"strings"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/taskserver/taskrunner"
)

var (
	// ErrUnknownOp is returned for unsupported operation names.
	ErrUnknownOp = errors.New("Unknown operation")

	// ErrArity is returned when an operation gets wrong number of arguments.
	ErrArity = errors.New("Wrong number of arguments")

	// ErrDomain is returned when arguments are out of the operation's domain.
	ErrDomain = errors.New("Argument out of domain")
)

// Op is a math operation.
type Op string

const (
	Sin  Op = "sin"
	Sqrt Op = "sqrt"
	Pow  Op = "pow"
)

// Ops lists all supported operations.
var Ops = []Op{Sin, Sqrt, Pow}

// ParseOp parses an operation name.
func ParseOp(name string) (Op, error) {
	op := Op(strings.TrimSpace(name))
	if op.Arity() == 0 {
		return "", perrors.Wrapf(ErrUnknownOp, "%q", name)
	}
	return op, nil
}

// Arity returns the number of arguments, 0 for unknown operations.
func (op Op) Arity() int {
	switch op {
	case Sin, Sqrt:
		return 1
	case Pow:
		return 2
	default:
		return 0
	}
}

// Eval computes the operation.
func (op Op) Eval(args ...float64) (float64, error) {
	arity := op.Arity()
	if arity == 0 {
		return 0, perrors.Wrapf(ErrUnknownOp, "%q", string(op))
	}
	if len(args) != arity {
		return 0, perrors.Wrapf(ErrArity, "%s expects %d, got %d", op, arity, len(args))
	}

	switch op {
	case Sin:
		return math.Sin(args[0]), nil
	case Sqrt:
		if args[0] < 0 {
			return 0, perrors.Wrapf(ErrDomain, "sqrt %v", args[0])
		}
		return math.Sqrt(args[0]), nil
	default:
		return math.Pow(args[0], args[1]), nil
	}
}

// Task returns a task computing the operation. Arguments are copied.
func (op Op) Task(args ...float64) taskrunner.Task[float64] {
	args = append([]float64(nil), args...)
	return func() (float64, error) {
		return op.Eval(args...)
	}
}
