package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Config keys.
const (
	cfgKeyBackend          = "backend"
	cfgKeyDataDir          = "data_dir"
	cfgKeyLogLevel         = "log_level"
	cfgKeyLogFormat        = "log_format"
	cfgKeyListenAddr       = "listen_addr"
	cfgKeyExpiryWindowDays = "expiry_window_days"
	cfgKeyContactCity      = "contact_city"
)

// Defaults for keys absent from config.yaml.
const (
	defaultLogLevel   = "warn"
	defaultLogFormat  = "text"
	defaultListenAddr = "127.0.0.1:8080"
)

// configFile is the structure written to a new config.yaml.
type configFile struct {
	Backend          string `yaml:"backend"`
	DataDir          string `yaml:"data_dir,omitempty"`
	LogLevel         string `yaml:"log_level"`
	LogFormat        string `yaml:"log_format"`
	ListenAddr       string `yaml:"listen_addr"`
	ExpiryWindowDays int    `yaml:"expiry_window_days"`
	ContactCity      string `yaml:"contact_city"`
}

func defaultConfigFile(dataDir string) configFile {
	return configFile{
		Backend:          types.BackendSQLite,
		DataDir:          dataDir,
		LogLevel:         defaultLogLevel,
		LogFormat:        defaultLogFormat,
		ListenAddr:       defaultListenAddr,
		ExpiryWindowDays: types.DefaultExpiryWindowDays,
		ContactCity:      types.DefaultContactCity,
	}
}

// settings is the resolved configuration of one CLI invocation.
type settings struct {
	configDir  string
	dataDir    string
	logLevel   string
	logFormat  string
	listenAddr string
	store      types.Config
}

// loadSettings reads config.yaml from configDir with Viper and applies the
// directory precedence rules. A missing config.yaml is not an error. Log
// settings and the listen address may also come from PANTRY_LOG_LEVEL,
// PANTRY_LOG_FORMAT and PANTRY_LISTEN_ADDR.
func loadSettings(configDir, dataDirFlag string) (settings, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetDefault(cfgKeyExpiryWindowDays, types.DefaultExpiryWindowDays)
	v.SetDefault(cfgKeyContactCity, types.DefaultContactCity)

	v.SetEnvPrefix("PANTRY")
	for _, key := range []string{cfgKeyLogLevel, cfgKeyLogFormat, cfgKeyListenAddr} {
		if err := v.BindEnv(key); err != nil {
			return settings{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	v.SetConfigFile(paths.ConfigFile(configDir))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	s := settings{
		configDir:  configDir,
		dataDir:    dataDir,
		logLevel:   v.GetString(cfgKeyLogLevel),
		logFormat:  v.GetString(cfgKeyLogFormat),
		listenAddr: v.GetString(cfgKeyListenAddr),
		store: types.Config{
			Backend:          v.GetString(cfgKeyBackend),
			DataDir:          dataDir,
			ExpiryWindowDays: v.GetInt(cfgKeyExpiryWindowDays),
			ContactCity:      v.GetString(cfgKeyContactCity),
		},
	}
	return s, nil
}

// writeConfigIfMissing creates configDir and a default config.yaml in it.
// An existing file is left untouched. Reports whether a file was written.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile(dataDir)
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# pantry configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
