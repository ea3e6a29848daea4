// Package ping checks that a deployed function answers the ping action.
package ping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/sirupsen/logrus"

	"github.com/glomex/ramuda-sample/pkg/handler"
)

// DefaultAlias is the alias pinged when no version is given
const DefaultAlias = "ACTIVE"

var ErrFunctionError = errors.New("function returned an error")

// LambdaAPI is the subset of the Lambda client used by Pinger
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

type Pinger struct {
	client LambdaAPI
	logger logrus.FieldLogger
}

func NewPinger(cfg aws.Config, logger logrus.FieldLogger) *Pinger {
	return NewPingerFromClient(lambda.NewFromConfig(cfg), logger)
}

func NewPingerFromClient(client LambdaAPI, logger logrus.FieldLogger) *Pinger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pinger{client: client, logger: logger}
}

// Payload is the event body sent to the function
func Payload() []byte {
	payload, _ := json.Marshal(map[string]string{handler.ActionKey: handler.PingAction})
	return payload
}

// Ping invokes function synchronously with the ping event and returns the raw response payload.
// An empty qualifier targets DefaultAlias.
func (p *Pinger) Ping(ctx context.Context, function string, qualifier string) ([]byte, error) {
	if qualifier == "" {
		qualifier = DefaultAlias
	}
	logger := p.logger.WithFields(logrus.Fields{"function": function, "qualifier": qualifier})
	logger.Debug("sending ping")

	out, err := p.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(function),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        Payload(),
		Qualifier:      aws.String(qualifier),
	})
	if err != nil {
		return nil, fmt.Errorf("invoking %s:%s: %w", function, qualifier, err)
	}
	if out.FunctionError != nil {
		return out.Payload, fmt.Errorf("%w: %s: %s", ErrFunctionError, aws.ToString(out.FunctionError), string(out.Payload))
	}
	logger.WithField("payload", string(out.Payload)).Info("ping response")
	return out.Payload, nil
}

// IsAlive reports whether a ping response payload carries the alive answer.
func IsAlive(payload []byte) bool {
	return strings.Contains(string(payload), handler.AliveResponse)
}
