package config

import (
	"os"
	"path/filepath"

	"github.com/OpenPeeDeeP/xdg"
	yaml "github.com/jesseduffield/yaml"
)

// AppConfig contains the run-level configuration derived from flags and
// build info, plus the user's merged UserConfig.
type AppConfig struct {
	Name        string
	Version     string
	Commit      string
	BuildDate   string
	BuildSource string
	Debug       bool

	UserConfig *UserConfig

	ConfigDir string
}

// NewAppConfig builds an AppConfig: resolves (and creates if needed) the
// config directory, loads config.yml over the defaults, and folds in the
// command-line/build-time values the caller already knows.
func NewAppConfig(name, version, commit, date, buildSource string, debug bool) (*AppConfig, error) {
	configDir, err := findOrCreateConfigDir(name)
	if err != nil {
		return nil, err
	}

	userConfig, err := loadUserConfigWithDefaults(configDir)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Name:        name,
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		BuildSource: buildSource,
		Debug:       debug || os.Getenv("DEBUG") == "TRUE",
		UserConfig:  userConfig,
		ConfigDir:   configDir,
	}, nil
}

func configDir(projectName string) string {
	if envConfigDir := os.Getenv("CONFIG_DIR"); envConfigDir != "" {
		return envConfigDir
	}
	return xdg.New("", projectName).ConfigHome()
}

func findOrCreateConfigDir(projectName string) (string, error) {
	folder := configDir(projectName)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", err
	}
	return folder, nil
}

func loadUserConfigWithDefaults(configDir string) (*UserConfig, error) {
	base := GetDefaultConfig()
	return loadUserConfig(configDir, &base)
}

func loadUserConfig(configDir string, base *UserConfig) (*UserConfig, error) {
	fileName := filepath.Join(configDir, "config.yml")

	if _, err := os.Stat(fileName); err != nil {
		if os.IsNotExist(err) {
			file, err := os.Create(fileName)
			if err != nil {
				return nil, err
			}
			file.Close()
		} else {
			return nil, err
		}
	}

	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(content, base); err != nil {
		return nil, err
	}

	return base, nil
}

// ConfigFilename returns the path to the resolved config.yml.
func (c *AppConfig) ConfigFilename() string {
	return filepath.Join(c.ConfigDir, "config.yml")
}
