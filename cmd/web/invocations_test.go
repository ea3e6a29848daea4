package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glomex/ramuda-sample/cmd/web/model"
	"github.com/glomex/ramuda-sample/pkg/function"
	"github.com/glomex/ramuda-sample/pkg/function/registry"
	"github.com/glomex/ramuda-sample/pkg/handler"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	r := registry.NewLocalFunctionRegistry(logger)
	handler.Register(context.Background(), r, logger)
	r.RegisterFunction(context.Background(), function.FunctionDefinition{
		Name: "broken",
		Handler: func(ctx context.Context, event function.Event, done *function.Completion) {
			panic("broken")
		},
	})
	return newRouter(r, logger)
}

func post(t *testing.T, router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInvokePing(t *testing.T) {
	router := setupRouter(t)

	w := post(t, router, "/api/v1/functions/sample/invocations", `{"id":"1","inputs":{"ramuda_action":"ping"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.CreateInvocationSuccess
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, "sample", resp.Function)
	assert.Equal(t, "alive", resp.Result)
}

func TestInvokeBareSuccess(t *testing.T) {
	router := setupRouter(t)

	w := post(t, router, "/api/v1/functions/sample/invocations", `{"inputs":{}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.CreateInvocationSuccess
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Nil(t, resp.Result)
}

func TestInvokeErrors(t *testing.T) {
	router := setupRouter(t)

	assert.Equal(t, http.StatusBadRequest, post(t, router, "/api/v1/functions/sample/invocations", `{`).Code)
	assert.Equal(t, http.StatusNotFound, post(t, router, "/api/v1/functions/missing/invocations", `{}`).Code)
	assert.Equal(t, http.StatusInternalServerError, post(t, router, "/api/v1/functions/broken/invocations", `{}`).Code)
}

func TestListFunctions(t *testing.T) {
	router := setupRouter(t)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/functions", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var functions []model.Function
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &functions))
	require.Len(t, functions, 3)
	assert.Equal(t, "broken", functions[0].Name)
	assert.Equal(t, "counter", functions[1].Name)
	assert.Equal(t, "sample", functions[2].Name)
}

func TestPing(t *testing.T) {
	router := setupRouter(t)

	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
