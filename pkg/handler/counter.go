package handler

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/glomex/ramuda-sample/pkg/function"
)

// Counter counts activations that carry no ramuda_action and echoes their event.
type Counter struct {
	Logger logrus.FieldLogger
	count  int64
}

func NewCounter(logger logrus.FieldLogger) *Counter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Counter{Logger: logger}
}

func (c *Counter) Handle(ctx context.Context, event function.Event, done *function.Completion) {
	c.Logger.WithField("event", event).Info("event")

	if _, present := event[ActionKey]; present {
		action, _ := Action(event)
		switch action {
		case PingAction:
			done.Complete(nil, AliveResponse)
		case CountAction:
			done.Complete(nil, c.Count())
		default:
			done.Succeed()
		}
		return
	}
	atomic.AddInt64(&c.count, 1)
	done.Complete(nil, event)
}

func (c *Counter) Count() int64 {
	return atomic.LoadInt64(&c.count)
}

func (c *Counter) Definition() function.FunctionDefinition {
	return function.FunctionDefinition{
		Name:        CounterName,
		Description: "Counts plain invocations; answers ping and count actions",
		Handler:     c.Handle,
	}
}
