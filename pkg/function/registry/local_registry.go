package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/glomex/ramuda-sample/pkg/function"
	"github.com/glomex/ramuda-sample/pkg/logging/timing"
)

type registeredFunction struct {
	id  function.FunctionID
	def function.FunctionDefinition
}

type LocalFunctionRegistry struct {
	mu             sync.RWMutex
	functionDefMap map[string]registeredFunction
	logger         logrus.FieldLogger
}

func NewLocalFunctionRegistry(logger logrus.FieldLogger) *LocalFunctionRegistry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LocalFunctionRegistry{
		functionDefMap: make(map[string]registeredFunction),
		logger:         logger,
	}
}

// RegisterFunction stores functionDef under its name. Re-registering a name replaces the
// previous definition and issues a fresh ID.
func (fr *LocalFunctionRegistry) RegisterFunction(ctx context.Context, functionDef function.FunctionDefinition) function.FunctionID {
	fid := uuid.New().String()
	fr.mu.Lock()
	fr.functionDefMap[functionDef.Name] = registeredFunction{id: fid, def: functionDef}
	fr.mu.Unlock()
	fr.logger.WithFields(logrus.Fields{"function": functionDef.Name, "id": fid}).Debug("registered function")
	return fid
}

func (fr *LocalFunctionRegistry) LookupFunction(ctx context.Context, name string) (function.FunctionDefinition, function.FunctionID, error) {
	fr.mu.RLock()
	defer fr.mu.RUnlock()
	f, ok := fr.functionDefMap[name]
	if !ok {
		return function.FunctionDefinition{}, "", fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}
	return f.def, f.id, nil
}

// ListFunctions returns definitions sorted by name
func (fr *LocalFunctionRegistry) ListFunctions(ctx context.Context) []function.FunctionDefinition {
	fr.mu.RLock()
	defs := make([]function.FunctionDefinition, 0, len(fr.functionDefMap))
	for _, f := range fr.functionDefMap {
		defs = append(defs, f.def)
	}
	fr.mu.RUnlock()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

func (fr *LocalFunctionRegistry) InvokeFunction(ctx context.Context, name string, event function.Event) (interface{}, error) {
	def, fid, err := fr.LookupFunction(ctx, name)
	if err != nil {
		return nil, err
	}
	logger := fr.logger.WithFields(logrus.Fields{"function": name, "id": fid})
	defer timing.Timeit(logger, "invoke", name)()
	return function.Invoke(ctx, def.Handler, event, logger)
}
