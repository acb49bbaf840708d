package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.Equal(t, "smash > ", cfg.Prompt)
	assert.Equal(t, 5*time.Second, cfg.ShutdownGrace)
	assert.Empty(t, cfg.StartupAliases)
}

func TestLoadUserConfigMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	base := GetDefaultConfig()

	loaded, err := loadUserConfig(dir, &base)
	assert.NoError(t, err)
	assert.Equal(t, "smash > ", loaded.Prompt)
}

func TestNewAppConfigRespectsConfigDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := NewAppConfig("smash", "unversioned", "", "", "test", false)
	assert.NoError(t, err)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, "smash > ", cfg.UserConfig.Prompt)
}
