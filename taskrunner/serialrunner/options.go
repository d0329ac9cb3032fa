package serialrunner

import (
	"fmt"

	uuid "github.com/satori/go.uuid"

	"github.com/huangjunwen/taskserver/logr"
)

// Option is the option in creating Runner.
type Option func(*options) error

type options struct {
	logger    logr.Logger
	name      string
	queueHint int
}

func newOptions(opts ...Option) (*options, error) {
	o := &options{
		logger:    DefaultLogger,
		queueHint: DefaultQueueHint,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.name == "" {
		o.name = uuid.NewV4().String()
	}
	return o, nil
}

// Logger sets the logger. Task failures and lifecycle events are logged to it.
func Logger(l logr.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return fmt.Errorf("Logger(nil)")
		}
		o.logger = l
		return nil
	}
}

// Name sets the runner name, which is attached to every log line as "runner".
// A random uuid is used if not set.
func Name(name string) Option {
	return func(o *options) error {
		if name == "" {
			return fmt.Errorf("Name is empty")
		}
		o.name = name
		return nil
	}
}

// QueueHint sets the initial capacity of the pending queue. n >= 0.
// The queue is unbounded, this only saves some reallocations on burst.
func QueueHint(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("QueueHint < 0")
		}
		o.queueHint = n
		return nil
	}
}
