package main

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/RobertP-SyndicateLabs/exprscript/expr"
)

// CLIConfig is the on-disk configuration for exprc, loaded from a TOML
// file named by -config or EXPRC_CONFIG. Every field defaults sensibly
// when the file is absent or a key is omitted.
type CLIConfig struct {
	HexChar      string `toml:"hex_char"`
	DecimalSep   string `toml:"decimal_separator"`
	ArgSeparator string `toml:"arg_separator"`
	LogLevel     string `toml:"log_level"`
}

func defaultConfig() CLIConfig {
	return CLIConfig{
		HexChar:      "$",
		DecimalSep:   ".",
		ArgSeparator: ",",
		LogLevel:     "info",
	}
}

// LoadConfig reads path as TOML and overlays it on the defaults. A missing
// file is not an error: exprc runs fine with defaults alone.
func LoadConfig(path string) (CLIConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c CLIConfig) locale() expr.Locale {
	loc := expr.Locale{}
	if len(c.HexChar) > 0 {
		loc.HexChar = c.HexChar[0]
	}
	if len(c.DecimalSep) > 0 {
		loc.DecimalSep = c.DecimalSep[0]
	}
	if len(c.ArgSeparator) > 0 {
		loc.ArgSeparator = c.ArgSeparator[0]
	}
	return loc
}
