// Package config loads the settings shared by the pogen commands: the embedded
// defaults, overridden by config.yml in the pogen directory of the user
// configuration directory.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/po"
	"gopkg.in/yaml.v2"
)

type (
	Config struct {
		Seed        uint64
		BPM         float64
		FailLimit   int
		LoopLimit   int
		MarkovLimit int
		Database    string
		MIDI        MIDIConfig
		// YmlError is the error of reading the user config file, if it
		// existed but could not be parsed. The defaults are used then.
		YmlError error `yaml:"-"`
	}

	MIDIConfig struct {
		TicksPerBeat int
		Channel      uint8
		Velocity     uint8
	}
)

// Dir is the name of the directory under os.UserConfigDir holding the user
// config, presets and the default database.
const Dir = "pogen"

//go:embed config.yml
var defaultConfigYaml []byte

// Default returns the embedded default configuration.
func Default() Config {
	var c Config
	if err := yaml.UnmarshalStrict(defaultConfigYaml, &c); err != nil {
		panic(fmt.Errorf("failed to unmarshal the default config: %w", err))
	}
	return c
}

// ReadCustomConfigYml reads a file from the pogen config directory into target,
// which must be a pointer. exists is false if the file could not be read.
func ReadCustomConfigYml(filename string, target interface{}) (exists bool, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return false, err
	}
	bytes, err := os.ReadFile(filepath.Join(configDir, Dir, filename))
	if err != nil {
		return false, err
	}
	return true, yaml.UnmarshalStrict(bytes, target)
}

// Load returns the defaults overridden by the user config.yml, if there is one.
func Load() Config {
	c := Default()
	user := c
	exists, err := ReadCustomConfigYml("config.yml", &user)
	if exists {
		if err != nil {
			c.YmlError = err
		} else {
			c = user
		}
	}
	return c
}

// Factory returns a parameter object factory with the configured seed and
// limits.
func (c Config) Factory() *po.Factory {
	f := po.NewFactory(c.Seed)
	if c.FailLimit > 0 {
		f.FailLimit = c.FailLimit
	}
	if c.LoopLimit > 0 {
		f.LoopLimit = c.LoopLimit
	}
	if c.MarkovLimit > 0 {
		f.MarkovLimit = c.MarkovLimit
	}
	return f
}

// Context returns the evaluation context with the configured tempo.
func (c Config) Context() *pogen.Context {
	return &pogen.Context{BPM: c.BPM}
}

func (c Config) MIDIOptions() pogen.MIDIOptions {
	return pogen.MIDIOptions{
		TicksPerBeat: c.MIDI.TicksPerBeat,
		BPM:          c.BPM,
		Channel:      c.MIDI.Channel,
		Velocity:     c.MIDI.Velocity,
	}
}

// DatabasePath resolves a relative Database against the pogen config
// directory.
func (c Config) DatabasePath() (string, error) {
	if c.Database == "" || filepath.IsAbs(c.Database) {
		return c.Database, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user config directory: %v", err)
	}
	return filepath.Join(configDir, Dir, c.Database), nil
}
