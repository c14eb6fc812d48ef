package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config keys. Each one is also the name of the flag that overrides it.
const (
	KeyFormat        = "format"
	KeyMaxLines      = "max-lines"
	KeyHighlight     = "highlight"
	KeyStyle         = "style"
	KeyCaseSensitive = "case-sensitive"
	KeyMaxMatches    = "max-matches"
	KeyLogLevel      = "log-level"
)

// Settings are the resolved options for one invocation
type Settings struct {
	Format        string
	MaxLines      int
	Highlight     bool
	Style         string
	CaseSensitive bool
	MaxMatches    int
	LogLevel      logrus.Level
	ConfigFile    string
}

// DefaultConfigPath returns $HOME/.config/nbread/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nbread", "config.yaml"), nil
}

// Load resolves settings from defaults, the config file and flags, in
// increasing priority. cfgFile may be empty to use the default location;
// a missing default file is not an error. Config file keys are spelled like
// the flags (max-lines, case-sensitive).
func Load(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault(KeyFormat, FormatText)
	v.SetDefault(KeyMaxLines, 0)
	v.SetDefault(KeyHighlight, false)
	v.SetDefault(KeyStyle, "monokai")
	v.SetDefault(KeyCaseSensitive, false)
	v.SetDefault(KeyMaxMatches, 3)
	v.SetDefault(KeyLogLevel, "warn")

	explicit := cfgFile != ""
	if !explicit {
		path, err := DefaultConfigPath()
		if err == nil {
			cfgFile = path
		}
	}

	used := ""
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
			}
		} else {
			used = v.ConfigFileUsed()
		}
	}

	if flags != nil {
		for _, key := range []string{KeyFormat, KeyMaxLines, KeyHighlight, KeyStyle, KeyCaseSensitive, KeyMaxMatches, KeyLogLevel} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	format := strings.ToLower(v.GetString(KeyFormat))
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
	}

	level, err := logrus.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	return &Settings{
		Format:        format,
		MaxLines:      v.GetInt(KeyMaxLines),
		Highlight:     v.GetBool(KeyHighlight),
		Style:         v.GetString(KeyStyle),
		CaseSensitive: v.GetBool(KeyCaseSensitive),
		MaxMatches:    v.GetInt(KeyMaxMatches),
		LogLevel:      level,
		ConfigFile:    used,
	}, nil
}

// NewLogger builds the stderr logger used by every command.
func NewLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	return logger
}
