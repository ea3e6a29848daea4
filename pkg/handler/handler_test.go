package handler

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glomex/ramuda-sample/pkg/function"
	"github.com/glomex/ramuda-sample/pkg/function/registry"
)

type call struct {
	err    error
	result interface{}
}

func runSample(t *testing.T, s *Sample, event function.Event) []call {
	t.Helper()
	var calls []call
	done := function.NewCompletion(func(err error, result interface{}) {
		calls = append(calls, call{err: err, result: result})
	}, s.Logger)
	s.Handle(context.Background(), event, done)
	return calls
}

func TestSamplePing(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := NewSample(logger)

	calls := runSample(t, s, function.Event{ActionKey: "ping"})

	require.Len(t, calls, 1)
	assert.NoError(t, calls[0].err)
	assert.Equal(t, "alive", calls[0].result)
	assert.Equal(t, "respond to ping event", hook.LastEntry().Message)
}

func TestSampleBareSuccess(t *testing.T) {
	events := map[string]function.Event{
		"empty":         {},
		"other action":  {ActionKey: "pong"},
		"other fields":  {"foo": "bar"},
		"non string":    {ActionKey: 42},
		"nil action":    {ActionKey: nil},
		"upper case":    {ActionKey: "PING"},
		"nil event map": nil,
	}
	for name, event := range events {
		t.Run(name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			s := NewSample(logger)

			calls := runSample(t, s, event)

			require.Len(t, calls, 1)
			assert.NoError(t, calls[0].err)
			assert.Nil(t, calls[0].result)
			assert.Equal(t, "910m3x r0ck5!", hook.LastEntry().Message)
		})
	}
}

func TestSampleUsesTransform(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := NewSample(logger)
	var seen string
	s.Transform = func(in string) string {
		seen = in
		return "transformed"
	}

	calls := runSample(t, s, function.Event{})

	require.Len(t, calls, 1)
	assert.Equal(t, "glomex rocks!", seen)
	assert.Equal(t, "transformed", hook.LastEntry().Message)
}

func TestSampleThroughInvoke(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewSample(logger)

	result, err := function.Invoke(context.Background(), s.Handle, function.Event{ActionKey: "ping"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "alive", result)

	result, err = function.Invoke(context.Background(), s.Handle, function.Event{}, logger)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCounter(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := NewCounter(logger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		event := function.Event{"n": i}
		result, err := function.Invoke(ctx, c.Handle, event, logger)
		require.NoError(t, err)
		assert.Equal(t, event, result)
	}

	result, err := function.Invoke(ctx, c.Handle, function.Event{ActionKey: CountAction}, logger)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result)

	result, err = function.Invoke(ctx, c.Handle, function.Event{ActionKey: PingAction}, logger)
	require.NoError(t, err)
	assert.Equal(t, AliveResponse, result)

	result, err = function.Invoke(ctx, c.Handle, function.Event{ActionKey: "other"}, logger)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Equal(t, int64(3), c.Count())
}

func TestRegister(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := registry.NewLocalFunctionRegistry(logger)
	Register(context.Background(), r, logger)

	defs := r.ListFunctions(context.Background())
	require.Len(t, defs, 2)
	assert.Equal(t, CounterName, defs[0].Name)
	assert.Equal(t, SampleName, defs[1].Name)

	result, err := r.InvokeFunction(context.Background(), SampleName, function.Event{ActionKey: "ping"})
	require.NoError(t, err)
	assert.Equal(t, "alive", result)
}
