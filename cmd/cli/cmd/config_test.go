package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glomex/ramuda-sample/pkg/ping"
)

func writeDotenv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDotenv(t *testing.T) {
	path := writeDotenv(t, "RAMUDA_FUNCTION=fromfile\nRAMUDA_DEPLOY_BUCKET=bucket\nRAMUDA_REGION=us-east-1\n")

	c, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "fromfile", c.Function)
	assert.Equal(t, "bucket", c.DeployBucket)
	assert.Equal(t, "us-east-1", c.Region)
	assert.Equal(t, ping.DefaultAlias, c.Alias)
}

func TestLoadConfigEnvOverridesDotenv(t *testing.T) {
	path := writeDotenv(t, "RAMUDA_FUNCTION=fromfile\nRAMUDA_ALIAS=STAGING\n")
	t.Setenv("RAMUDA_FUNCTION", "fromenv")

	c, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", c.Function)
	assert.Equal(t, "STAGING", c.Alias)
}

func TestLoadConfigMissingFile(t *testing.T) {
	c, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", c.Region)
	assert.Equal(t, ping.DefaultAlias, c.Alias)
	assert.Empty(t, c.Function)
}

func TestInitConfigDotenv(t *testing.T) {
	previous := configFile
	t.Cleanup(func() {
		configFile = previous
		config = Config{}
	})
	configFile = writeDotenv(t, "RAMUDA_FUNCTION=fromfile\nRAMUDA_DEPLOY_BUCKET=bucket\n")

	initConfig()

	assert.Equal(t, "fromfile", config.Function)
	assert.Equal(t, "bucket", config.DeployBucket)
}

func TestPingQualifier(t *testing.T) {
	assert.Equal(t, "ACTIVE", pingQualifier("ACTIVE", ""))
	assert.Equal(t, "7", pingQualifier("ACTIVE", "7"))
}
