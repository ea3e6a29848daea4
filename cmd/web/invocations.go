package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apierrors "github.com/glomex/ramuda-sample/cmd/web/errors"
	"github.com/glomex/ramuda-sample/cmd/web/model"
	"github.com/glomex/ramuda-sample/pkg/function/registry"
)

type server struct {
	registry registry.FunctionRegistry
	logger   logrus.FieldLogger
}

// InvocationsPostHandler godoc
// @Summary      Create a function invocation
// @Description  Invokes a registered function once with the given event as input
// @Tags         invocations
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Function name"
// @Param        invocation  body  model.CreateInvocation  true  "Invocation"
// @Success      200  {object}  model.CreateInvocationSuccess
// @Failure      400  {object}  errors.HTTPError
// @Failure      404  {object}  errors.HTTPError
// @Failure      500  {object}  errors.HTTPError
// @Router       /functions/{name}/invocations [post]
func (s *server) InvocationsPostHandler(ctx *gin.Context) {
	var createInvocationPayload model.CreateInvocation
	if err := ctx.ShouldBindJSON(&createInvocationPayload); err != nil {
		apierrors.NewError(ctx, http.StatusBadRequest, err)
		return
	}
	if createInvocationPayload.ID == "" {
		createInvocationPayload.ID = uuid.New().String()
	}
	name := ctx.Param("name")
	logger := s.logger.WithFields(logrus.Fields{"function": name, "invocation": createInvocationPayload.ID})

	result, err := s.registry.InvokeFunction(ctx.Request.Context(), name, createInvocationPayload.Inputs)
	if errors.Is(err, registry.ErrFunctionNotFound) {
		apierrors.NewError(ctx, http.StatusNotFound, err)
		return
	}
	if err != nil {
		logger.WithError(err).Error("invocation failed")
		apierrors.NewError(ctx, http.StatusInternalServerError, err)
		return
	}
	logger.Info("invocation completed")
	ctx.JSON(http.StatusOK, model.CreateInvocationSuccess{
		ID:       createInvocationPayload.ID,
		Function: name,
		Result:   result,
	})
}

// FunctionsGetHandler godoc
// @Summary      List functions
// @Tags         functions
// @Produce      json
// @Success      200  {array}  model.Function
// @Router       /functions [get]
func (s *server) FunctionsGetHandler(ctx *gin.Context) {
	functions := []model.Function{}
	for _, def := range s.registry.ListFunctions(ctx.Request.Context()) {
		functions = append(functions, model.Function{Name: def.Name, Description: def.Description})
	}
	ctx.JSON(http.StatusOK, functions)
}

func PingHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, model.Pong{Message: "pong"})
}
