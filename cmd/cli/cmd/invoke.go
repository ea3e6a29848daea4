/*
Copyright © 2026 The ramuda-sample Authors

*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/glomex/ramuda-sample/pkg/function"
	"github.com/glomex/ramuda-sample/pkg/function/registry"
	"github.com/glomex/ramuda-sample/pkg/handler"
)

var (
	invokeEventFile string
	invokeAction    string
)

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().StringVarP(&invokeEventFile, "event", "e", "", "JSON or YAML file holding the event, - for stdin")
	invokeCmd.Flags().StringVarP(&invokeAction, "action", "a", "", "set ramuda_action on the event")
}

var invokeCmd = &cobra.Command{
	Use:   "invoke [function]",
	Short: "Invokes a function locally",
	Long:  `Invokes a function a single time in-process, useful for debugging and for adhoc runs`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := handler.SampleName
		if len(args) == 1 {
			name = args[0]
		}
		event, err := loadEvent(cmd.InOrStdin(), invokeEventFile)
		if err != nil {
			return err
		}
		if invokeAction != "" {
			event[handler.ActionKey] = invokeAction
		}
		return runInvoke(cmd.Context(), cmd.OutOrStdout(), newLocalRegistry(), name, event)
	},
}

func newLocalRegistry() registry.FunctionRegistry {
	r := registry.NewLocalFunctionRegistry(logrus.StandardLogger())
	handler.Register(context.Background(), r, logrus.StandardLogger())
	return r
}

// loadEvent reads an event from path. YAML is a superset of JSON so both formats decode the same way.
func loadEvent(stdin io.Reader, path string) (function.Event, error) {
	event := function.Event{}
	if path == "" {
		return event, nil
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading event: %w", err)
	}
	if err := yaml.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decoding event %s: %w", path, err)
	}
	if event == nil {
		event = function.Event{}
	}
	return event, nil
}

func runInvoke(ctx context.Context, out io.Writer, r registry.FunctionRegistry, name string, event function.Event) error {
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := r.InvokeFunction(ctx, name, event)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(out, string(encoded))
	return nil
}
