package calc

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"

	perrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/huangjunwen/taskserver/taskrunner"
	"github.com/huangjunwen/taskserver/taskrunner/serialrunner"
)

func TestRandomArgs(t *testing.T) {
	assert := assert.New(t)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		args := RandomArgs(Sin, rng)
		assert.Len(args, 1)
		assert.True(args[0] >= 0 && args[0] <= 100)

		args = RandomArgs(Pow, rng)
		assert.Len(args, 2)
		assert.True(args[0] >= 0 && args[0] <= 100)
		assert.True(args[1] >= 0 && args[1] <= 20)
	}
}

func TestSubmitter(t *testing.T) {
	assert := assert.New(t)

	r := serialrunner.Must[float64]()
	assert.NoError(r.Start())
	defer r.Close()

	count := 300
	outs := make([]*bytes.Buffer, len(Ops))
	wg := &sync.WaitGroup{}
	for i, op := range Ops {
		i, op := i, op
		outs[i] = &bytes.Buffer{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := &Submitter{
				Runner: r,
				Op:     op,
				Count:  count,
				Rand:   rand.New(rand.NewSource(int64(i))),
				Out:    outs[i],
			}
			assert.NoError(s.Run(context.Background()))
		}()
	}
	wg.Wait()

	for i, op := range Ops {
		lines := strings.Split(strings.TrimSpace(outs[i].String()), "\n")
		assert.Len(lines, count)
		assert.True(strings.HasPrefix(lines[0], string(op)+" "))

		report, err := Verify(strings.NewReader(outs[i].String()))
		assert.NoError(err)
		assert.True(report.OK(), "%+v", report.Mismatches)
		assert.Equal(count, report.Total)
	}
}

func TestSubmitterErrors(t *testing.T) {
	assert := assert.New(t)

	{
		s := &Submitter{Op: Op("cos"), Count: 1}
		assert.Equal(ErrUnknownOp, perrors.Cause(s.Run(context.Background())))
	}

	{
		r := serialrunner.Must[float64]()
		r.Stop()
		s := &Submitter{
			Runner: r,
			Op:     Sin,
			Count:  1,
			Rand:   rand.New(rand.NewSource(1)),
			Out:    &bytes.Buffer{},
		}
		assert.Equal(taskrunner.ErrClosed, perrors.Cause(s.Run(context.Background())))
	}

	// Never started: the context bounds the wait.
	{
		r := serialrunner.Must[float64]()
		defer r.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := &Submitter{
			Runner: r,
			Op:     Sqrt,
			Count:  1,
			Rand:   rand.New(rand.NewSource(1)),
			Out:    &bytes.Buffer{},
		}
		assert.Equal(context.Canceled, perrors.Cause(s.Run(ctx)))
	}
}
