package function

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type FunctionID = string

// Event is the record delivered to a handler for a single activation
type Event = map[string]interface{}

// Callback ends an activation with either an error or a result. A nil result is a bare success.
type Callback func(err error, result interface{})

// Handler processes one event and must finish by calling done.Complete exactly once
type Handler func(ctx context.Context, event Event, done *Completion)

type FunctionDefinition struct {
	Name        string
	Description string
	Handler     Handler
}

var (
	ErrNotCompleted = errors.New("handler returned without completing")
	ErrHandlerPanic = errors.New("handler panicked")
)

// Completion guards a Callback so that it fires at most once per activation.
type Completion struct {
	once     sync.Once
	mu       sync.Mutex
	done     bool
	callback Callback
	logger   logrus.FieldLogger
}

func NewCompletion(callback Callback, logger logrus.FieldLogger) *Completion {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Completion{callback: callback, logger: logger}
}

// Complete invokes the wrapped callback on the first call and drops every later call.
func (c *Completion) Complete(err error, result interface{}) {
	fired := false
	c.once.Do(func() {
		c.mu.Lock()
		c.done = true
		c.mu.Unlock()
		fired = true
		if c.callback != nil {
			c.callback(err, result)
		}
	})
	if !fired {
		c.logger.Warn("completion already signalled, dropping extra call")
	}
}

// Succeed is the bare success signal.
func (c *Completion) Succeed() {
	c.Complete(nil, nil)
}

func (c *Completion) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Invoke runs handler synchronously and returns whatever it completed with.
// Panics are recovered and reported as ErrHandlerPanic.
func Invoke(ctx context.Context, handler Handler, event Event, logger logrus.FieldLogger) (result interface{}, err error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	done := NewCompletion(func(cbErr error, cbResult interface{}) {
		err = cbErr
		result = cbResult
	}, logger)

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("handler panicked")
			done.Complete(fmt.Errorf("%w: %v", ErrHandlerPanic, r), nil)
		}
		if !done.Done() {
			err = ErrNotCompleted
		}
	}()

	handler(ctx, event, done)
	return result, err
}
