package registry

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glomex/ramuda-sample/pkg/function"
)

func echo(ctx context.Context, event function.Event, done *function.Completion) {
	done.Complete(nil, event)
}

func TestRegisterAndInvoke(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := NewLocalFunctionRegistry(logger)
	ctx := context.Background()

	fid := r.RegisterFunction(ctx, function.FunctionDefinition{Name: "echo", Handler: echo})
	require.NotEmpty(t, fid)

	def, gotID, err := r.LookupFunction(ctx, "echo")
	require.NoError(t, err)
	assert.Equal(t, fid, gotID)
	assert.Equal(t, "echo", def.Name)

	result, err := r.InvokeFunction(ctx, "echo", function.Event{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, function.Event{"a": "b"}, result)
}

func TestReRegisterIssuesNewID(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := NewLocalFunctionRegistry(logger)
	ctx := context.Background()

	first := r.RegisterFunction(ctx, function.FunctionDefinition{Name: "echo", Handler: echo})
	second := r.RegisterFunction(ctx, function.FunctionDefinition{Name: "echo", Description: "v2", Handler: echo})
	assert.NotEqual(t, first, second)

	defs := r.ListFunctions(ctx)
	require.Len(t, defs, 1)
	assert.Equal(t, "v2", defs[0].Description)
}

func TestUnknownFunction(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := NewLocalFunctionRegistry(logger)

	_, _, err := r.LookupFunction(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrFunctionNotFound)

	_, err = r.InvokeFunction(context.Background(), "missing", function.Event{})
	assert.ErrorIs(t, err, ErrFunctionNotFound)
}
