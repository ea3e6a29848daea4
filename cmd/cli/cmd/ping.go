/*
Copyright © 2026 The ramuda-sample Authors

*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glomex/ramuda-sample/pkg/ping"
)

var ErrNotAlive = errors.New("function did not answer the ping event")

var pingVersion string

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().String("alias", "", "alias to ping, defaults to RAMUDA_ALIAS or "+ping.DefaultAlias)
	pingCmd.Flags().StringVar(&pingVersion, "version", "", "function version to ping instead of the alias")
	viper.BindPFlag(configKeyAlias, pingCmd.Flags().Lookup("alias"))
}

var pingCmd = &cobra.Command{
	Use:   "ping [function] [--alias ALIAS|--version VERSION]",
	Short: "Pings a deployed function",
	Long:  `Invokes a deployed function with {"ramuda_action": "ping"} and fails unless it answers alive`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := config.Function
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			return errors.New("no function given, pass one, use --function or set RAMUDA_FUNCTION")
		}
		qualifier := pingQualifier(config.Alias, pingVersion)

		cfg, err := awsconfig.LoadDefaultConfig(cmd.Context(), awsconfig.WithRegion(config.Region))
		if err != nil {
			return fmt.Errorf("loading AWS config: %w", err)
		}
		pinger := ping.NewPinger(cfg, logrus.StandardLogger())
		return runPing(cmd.Context(), cmd.OutOrStdout(), pinger, name, qualifier)
	},
}

// pingQualifier picks the version when one is given, the alias otherwise
func pingQualifier(alias string, version string) string {
	if version != "" {
		return version
	}
	return alias
}

type pingClient interface {
	Ping(ctx context.Context, function string, qualifier string) ([]byte, error)
}

func runPing(ctx context.Context, out io.Writer, pinger pingClient, name string, qualifier string) error {
	payload, err := pinger.Ping(ctx, name, qualifier)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(payload))
	if !ping.IsAlive(payload) {
		return fmt.Errorf("%w: %s", ErrNotAlive, name)
	}
	return nil
}
