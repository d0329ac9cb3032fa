package calc

import (
	"bufio"
	"context"
	"io"
	"math/rand"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/taskserver/taskrunner"
)

// Submitter submits Count tasks of Op to Runner one at a time, waits for each result
// and writes a Record line to Out. Lines are in submission order.
type Submitter struct {
	Runner taskrunner.TaskRunner[float64]

	Op Op

	Count int

	// Rand generates arguments. Must not be shared with other go routines.
	Rand *rand.Rand

	Out io.Writer
}

// RandomArgs returns integer valued arguments for op: the first one in [0, 100],
// the exponent of pow in [0, 20].
func RandomArgs(op Op, rng *rand.Rand) []float64 {
	args := []float64{float64(rng.Intn(101))}
	if op == Pow {
		args = append(args, float64(rng.Intn(21)))
	}
	return args
}

// Run stops at the first error or when ctx done.
func (s *Submitter) Run(ctx context.Context) error {
	if s.Op.Arity() == 0 {
		return perrors.Wrapf(ErrUnknownOp, "%q", string(s.Op))
	}

	w := bufio.NewWriter(s.Out)
	for i := 0; i < s.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		args := RandomArgs(s.Op, s.Rand)

		id, err := s.Runner.Submit(s.Op.Task(args...))
		if err != nil {
			return perrors.Wrapf(err, "submit %s #%d", s.Op, i)
		}

		result, err := s.Runner.ResultContext(ctx, id)
		if err != nil {
			return perrors.Wrapf(err, "result of %s #%d (task %d)", s.Op, i, id)
		}

		rec := Record{Op: s.Op, Args: args, Result: result}
		if _, err := w.WriteString(rec.String() + "\n"); err != nil {
			return perrors.Wrap(err, "write result log error")
		}
	}
	return perrors.Wrap(w.Flush(), "flush result log error")
}
