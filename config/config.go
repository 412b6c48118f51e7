package config

import (
	"errors"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug           = "debug"
	ConfigBoardWidth      = "board-width"
	ConfigBoardHeight     = "board-height"
	ConfigSearchDepth     = "search-depth"
	ConfigSearchVariant   = "search-variant"
	ConfigSearchThreads   = "search-threads"
	ConfigAutoplayGames   = "autoplay-games"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigAutoplayOutput  = "autoplay-output"
	ConfigCPUProfile      = "cpu-profile"
	ConfigMemProfile      = "mem-profile"
)

var errBadBoardSize = errors.New("board dimensions must be at least 2")

// Config holds all settings, from defaults, REVERSI_* environment
// variables and command-line flags, in increasing order of precedence.
type Config struct {
	*viper.Viper
}

// DefaultConfig returns a Config with only the defaults set.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigBoardWidth, 8)
	c.SetDefault(ConfigBoardHeight, 8)
	c.SetDefault(ConfigSearchDepth, 4)
	c.SetDefault(ConfigSearchVariant, "greedy")
	c.SetDefault(ConfigSearchThreads, 1)
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigAutoplayThreads, runtime.NumCPU())
	c.SetDefault(ConfigAutoplayOutput, "")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
}

// Load parses args (without the program name) and the environment. Any
// positional arguments left over are returned, so a caller can treat them
// as a command.
func (c *Config) Load(args []string) ([]string, error) {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	c.setDefaults()

	fs := pflag.NewFlagSet("reversi", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigBoardWidth, 8, "board width for new games")
	fs.Int(ConfigBoardHeight, 8, "board height for new games")
	fs.Int(ConfigSearchDepth, 4, "plies searched below each root move")
	fs.String(ConfigSearchVariant, "greedy", "search variant: greedy or adversarial")
	fs.Int(ConfigSearchThreads, 1, "root moves searched in parallel")
	fs.Int(ConfigAutoplayGames, 100, "games played by the autoplay command")
	fs.Int(ConfigAutoplayThreads, runtime.NumCPU(), "autoplay worker goroutines")
	fs.String(ConfigAutoplayOutput, "", "write the autoplay summary as YAML to this file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file on exit")
	fs.SetInterspersed(false)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}
	c.SetEnvPrefix("reversi")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if c.GetInt(ConfigBoardWidth) < 2 || c.GetInt(ConfigBoardHeight) < 2 {
		return nil, errBadBoardSize
	}
	return fs.Args(), nil
}

// SanitizedSettings is AllSettings, meant for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

func (c *Config) Debug() bool         { return c.GetBool(ConfigDebug) }
func (c *Config) BoardWidth() int     { return c.GetInt(ConfigBoardWidth) }
func (c *Config) BoardHeight() int    { return c.GetInt(ConfigBoardHeight) }
func (c *Config) SearchDepth() int    { return c.GetInt(ConfigSearchDepth) }
func (c *Config) SearchVariant() string {
	return c.GetString(ConfigSearchVariant)
}
func (c *Config) SearchThreads() int   { return c.GetInt(ConfigSearchThreads) }
func (c *Config) AutoplayGames() int   { return c.GetInt(ConfigAutoplayGames) }
func (c *Config) AutoplayThreads() int { return c.GetInt(ConfigAutoplayThreads) }
func (c *Config) AutoplayOutput() string {
	return c.GetString(ConfigAutoplayOutput)
}
