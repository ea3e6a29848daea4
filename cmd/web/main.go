package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware
	"github.com/swaggo/gin-swagger/swaggerFiles"

	"github.com/glomex/ramuda-sample/pkg/function/registry"
	"github.com/glomex/ramuda-sample/pkg/handler"
	"github.com/glomex/ramuda-sample/pkg/logging"
)

// @title           Ramuda Sample API
// @version         0.1
// @description     Local harness for invoking the sample functions over HTTP

// @host      localhost:8080
// @BasePath  /api/v1

type Config struct {
	Addr      string `mapstructure:"web_addr"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func loadConfig() Config {
	v := viper.New()
	v.SetEnvPrefix("ramuda")
	v.SetDefault("web_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", logging.FormatText)
	for _, key := range []string{"web_addr", "log_level", "log_format"} {
		v.BindEnv(key)
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		logrus.Fatalf("error decoding environment into config: %v", err)
	}
	return config
}

func newRouter(r registry.FunctionRegistry, logger logrus.FieldLogger) *gin.Engine {
	s := &server{registry: r, logger: logger}
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		functions := v1.Group("/functions")
		{
			functions.GET("", s.FunctionsGetHandler)
			functions.POST("/:name/invocations", s.InvocationsPostHandler)
		}
	}
	router.GET("/ping", PingHandler)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}

func main() {
	config := loadConfig()
	if err := logging.Configure(os.Stderr, config.LogLevel, config.LogFormat); err != nil {
		logrus.Fatal(err)
	}

	r := registry.NewLocalFunctionRegistry(logrus.StandardLogger())
	handler.Register(context.Background(), r, logrus.StandardLogger())

	logrus.WithField("addr", config.Addr).Info("starting web harness")
	if err := newRouter(r, logrus.StandardLogger()).Run(config.Addr); err != nil {
		logrus.Fatal(err)
	}
}
