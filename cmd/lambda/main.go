package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"github.com/glomex/ramuda-sample/pkg/function"
	"github.com/glomex/ramuda-sample/pkg/function/registry"
	"github.com/glomex/ramuda-sample/pkg/handler"
	"github.com/glomex/ramuda-sample/pkg/logging"
)

const (
	envHandler   = "RAMUDA_HANDLER"
	envLogLevel  = "RAMUDA_LOG_LEVEL"
	envLogFormat = "RAMUDA_LOG_FORMAT"
)

// newLambdaHandler adapts the named registry function to the aws-lambda-go handler shape
func newLambdaHandler(r registry.FunctionRegistry, name string) func(context.Context, function.Event) (interface{}, error) {
	return func(ctx context.Context, event function.Event) (interface{}, error) {
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			logrus.WithField("request_id", lc.AwsRequestID).Debug("invocation started")
		}
		return r.InvokeFunction(ctx, name, event)
	}
}

func main() {
	format := os.Getenv(envLogFormat)
	if format == "" {
		format = logging.FormatJSON
	}
	if err := logging.Configure(os.Stdout, os.Getenv(envLogLevel), format); err != nil {
		logrus.Fatal(err)
	}

	name := os.Getenv(envHandler)
	if name == "" {
		name = handler.SampleName
	}

	ctx := context.Background()
	r := registry.NewLocalFunctionRegistry(logrus.StandardLogger())
	handler.Register(ctx, r, logrus.StandardLogger())
	if _, _, err := r.LookupFunction(ctx, name); err != nil {
		logrus.Fatal(err)
	}

	lambda.Start(newLambdaHandler(r, name))
}
