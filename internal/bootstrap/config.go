// Package bootstrap reads the configuration of the kifu command from a config
// file, KIFU_* environment variables and command line flags, in increasing order
// of precedence.
package bootstrap

import (
	"github.com/gorgonia/kifu"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Size        int    `mapstructure:"size"`
	SelfCapture bool   `mapstructure:"self_capture"`
	LogLevel    string `mapstructure:"log_level"`

	WriteSGF bool   `mapstructure:"write_sgf"`
	Dot      bool   `mapstructure:"dot"`
	GIF      string `mapstructure:"gif"` // file to animate the main line into
	GTP      bool   `mapstructure:"gtp"`
}

// flag names by config key
var flagNames = map[string]string{
	"size":         "size",
	"self_capture": "self-capture",
	"log_level":    "log-level",
	"write_sgf":    "write-sgf",
	"dot":          "dot",
	"gif":          "gif",
	"gtp":          "gtp",
}

// Flags returns the command line flags Setup understands.
func Flags() *pflag.FlagSet {
	def := kifu.DefaultConfig()
	fs := pflag.NewFlagSet("kifu", pflag.ContinueOnError)
	fs.String("config", "", "config file")
	fs.Int("size", def.Size, "board size for records without SZ")
	fs.Bool("self-capture", def.SelfCapture, "suicide removes the suicided chain instead of being ignored")
	fs.String("log-level", "info", "log level")
	fs.Bool("write-sgf", false, "write the record back out as SGF")
	fs.Bool("dot", false, "write the tree in the graphviz dot format")
	fs.String("gif", "", "animate the main line into this GIF file")
	fs.Bool("gtp", false, "speak GTP on stdin and stdout")
	return fs
}

// Setup reads the configuration. cfgPath may be empty. flags may be nil; otherwise
// the flags set on the command line override everything else.
func Setup(cfgPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	def := kifu.DefaultConfig()
	v.SetDefault("size", def.Size)
	v.SetDefault("self_capture", def.SelfCapture)
	v.SetDefault("log_level", "info")
	v.SetDefault("write_sgf", false)
	v.SetDefault("dot", false)
	v.SetDefault("gif", "")
	v.SetDefault("gtp", false)

	v.SetEnvPrefix("KIFU")
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithMessagef(err, "Unable to read config file %q", cfgPath)
		}
	}
	if flags != nil {
		for key, name := range flagNames {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.WithStack(err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WithMessage(err, "Unable to decode config")
	}
	if !cfg.Kifu().IsValid() {
		return nil, errors.Errorf("Invalid board size %d", cfg.Size)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.WithMessage(err, "Invalid log level")
	}
	return &cfg, nil
}

// Kifu returns the configuration of the game trees.
func (c *Config) Kifu() kifu.Config {
	return kifu.Config{
		Size:        c.Size,
		SelfCapture: c.SelfCapture,
	}
}

// NewLogger builds a production logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.WithMessage(err, "Invalid log level")
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
