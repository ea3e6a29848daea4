package registry

import (
	"context"
	"errors"

	"github.com/glomex/ramuda-sample/pkg/function"
)

var ErrFunctionNotFound = errors.New("function not found")

type FunctionRegistry interface {
	RegisterFunction(ctx context.Context, function function.FunctionDefinition) function.FunctionID
	LookupFunction(ctx context.Context, name string) (function.FunctionDefinition, function.FunctionID, error)
	ListFunctions(ctx context.Context) []function.FunctionDefinition
	InvokeFunction(ctx context.Context, name string, event function.Event) (interface{}, error)
}
