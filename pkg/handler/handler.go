// Package handler holds the functions served by the ramuda sample deployment.
package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/glomex/ramuda-sample/pkg/function"
	"github.com/glomex/ramuda-sample/pkg/function/registry"
	"github.com/glomex/ramuda-sample/pkg/leet"
)

const (
	// ActionKey is the event field inspected for control actions
	ActionKey = "ramuda_action"

	PingAction  = "ping"
	CountAction = "count"

	AliveResponse = "alive"

	SampleName  = "sample"
	CounterName = "counter"

	greeting = "glomex rocks!"
)

// Action returns the event's ramuda_action when it is a string.
func Action(event function.Event) (string, bool) {
	v, ok := event[ActionKey]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func IsPing(event function.Event) bool {
	action, ok := Action(event)
	return ok && action == PingAction
}

// Sample answers ping events with "alive"; any other event logs a greeting and succeeds bare.
type Sample struct {
	Logger    logrus.FieldLogger
	Transform func(string) string
}

func NewSample(logger logrus.FieldLogger) *Sample {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Sample{Logger: logger, Transform: leet.Transform}
}

func (s *Sample) Handle(ctx context.Context, event function.Event, done *function.Completion) {
	s.Logger.WithField("event", event).Info("event")

	if IsPing(event) {
		s.Logger.Info("respond to ping event")
		done.Complete(nil, AliveResponse)
		return
	}
	s.Logger.Info(s.Transform(greeting))
	done.Succeed()
}

func (s *Sample) Definition() function.FunctionDefinition {
	return function.FunctionDefinition{
		Name:        SampleName,
		Description: "Answers ping events with alive, otherwise logs a greeting",
		Handler:     s.Handle,
	}
}

// Register adds every sample function to r.
func Register(ctx context.Context, r registry.FunctionRegistry, logger logrus.FieldLogger) {
	r.RegisterFunction(ctx, NewSample(logger).Definition())
	r.RegisterFunction(ctx, NewCounter(logger).Definition())
}
