/*
Copyright © 2026 The ramuda-sample Authors

*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glomex/ramuda-sample/pkg/logging"
	"github.com/glomex/ramuda-sample/pkg/ping"
)

const (
	configKeyFunction     = "function"
	configKeyAlias        = "alias"
	configKeyRegion       = "region"
	configKeyDeployBucket = "deploy_bucket"
	configKeyLogLevel     = "log_level"
	configKeyLogFormat    = "log_format"

	envPrefix = "ramuda"
)

var configKeys = []string{
	configKeyFunction,
	configKeyAlias,
	configKeyRegion,
	configKeyDeployBucket,
	configKeyLogLevel,
	configKeyLogFormat,
}

type Config struct {
	Function     string `mapstructure:"function"`
	Alias        string `mapstructure:"alias"`
	Region       string `mapstructure:"region"`
	DeployBucket string `mapstructure:"deploy_bucket"`
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
}

var config Config

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ramuda",
	Short: "Build, invoke and ping Lambda functions",
	Long: `ramuda works with the sample Lambda functions in this repository.

Invoke a function locally with an event, bundle its code for deployment and
check that a deployed function answers the ping event.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Configure(cmd.ErrOrStderr(), config.LogLevel, config.LogFormat)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", ".env", "dotenv file with RAMUDA_* settings")
	rootCmd.PersistentFlags().String("function", "", "deployed function name, defaults to RAMUDA_FUNCTION")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")
	rootCmd.PersistentFlags().String("log-format", logging.FormatText, "log format, text or json")
	viper.BindPFlag(configKeyFunction, rootCmd.PersistentFlags().Lookup("function"))
	viper.BindPFlag(configKeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag(configKeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	loaded, err := loadConfig(viper.GetViper(), configFile)
	if err != nil {
		cobra.CheckErr(err)
	}
	config = loaded
	logrus.WithField("config", config).Debug("loaded config")
}

// loadConfig resolves Config from flags bound on v, RAMUDA_* environment variables,
// the dotenv file at path and defaults, in that order of precedence.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetDefault(configKeyAlias, ping.DefaultAlias)
	v.SetDefault(configKeyRegion, "eu-west-1")
	for _, key := range configKeys {
		v.BindEnv(key)
	}

	if err := mergeDotenv(v, path); err != nil {
		return Config{}, err
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("error decoding environment into config: %w", err)
	}
	return c, nil
}

// mergeDotenv reads the dotenv file at path into v's config layer. Keys are written
// there as RAMUDA_FUNCTION=... so the prefix is stripped to match the config keys.
// A missing file is not an error.
func mergeDotenv(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("env")
	if err := file.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	settings := map[string]interface{}{}
	for _, key := range file.AllKeys() {
		settings[strings.TrimPrefix(key, envPrefix+"_")] = file.Get(key)
	}
	if err := v.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("error merging config file: %w", err)
	}
	return nil
}
