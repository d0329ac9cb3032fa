package calc

import (
	"math"
	"testing"

	perrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseOp(t *testing.T) {
	assert := assert.New(t)

	for _, op := range Ops {
		parsed, err := ParseOp(string(op))
		assert.NoError(err)
		assert.Equal(op, parsed)
	}

	_, err := ParseOp("cos")
	assert.Equal(ErrUnknownOp, perrors.Cause(err))
}

func TestEval(t *testing.T) {
	assert := assert.New(t)

	for _, testCase := range []struct {
		Op        Op
		Args      []float64
		Expect    float64
		ExpectErr error
	}{
		{Op: Pow, Args: []float64{2, 10}, Expect: 1024},
		{Op: Sin, Args: []float64{0}, Expect: 0},
		{Op: Sin, Args: []float64{math.Pi / 2}, Expect: 1},
		{Op: Sqrt, Args: []float64{81}, Expect: 9},
		{Op: Sqrt, Args: []float64{-1}, ExpectErr: ErrDomain},
		{Op: Pow, Args: []float64{2}, ExpectErr: ErrArity},
		{Op: Sin, Args: []float64{1, 2}, ExpectErr: ErrArity},
		{Op: Op("tan"), Args: []float64{1}, ExpectErr: ErrUnknownOp},
	} {
		v, err := testCase.Op.Eval(testCase.Args...)
		if testCase.ExpectErr != nil {
			assert.Equal(testCase.ExpectErr, perrors.Cause(err), "%s %v", testCase.Op, testCase.Args)
			continue
		}
		assert.NoError(err)
		assert.InDelta(testCase.Expect, v, 1e-12, "%s %v", testCase.Op, testCase.Args)
	}
}

func TestOpTask(t *testing.T) {
	assert := assert.New(t)

	args := []float64{3, 2}
	task := Pow.Task(args...)
	args[0] = 100 // Task must not see this.

	v, err := task()
	assert.NoError(err)
	assert.Equal(9.0, v)

	_, err = Sqrt.Task(-4)()
	assert.Equal(ErrDomain, perrors.Cause(err))
}
