// Package appconfig reads and writes the INI application configuration.
package appconfig

import (
	ini "gopkg.in/ini.v1"

	"github.com/wudi/pdfstamp/observability"
)

// defaults are backfilled on every load so missing keys never surface to
// callers.
var defaults = map[string]map[string]string{
	"General": {
		"default_preset": "",
	},
}

// Config wraps config.ini access. Read and write failures degrade to
// in-memory defaults; they are logged, never propagated.
type Config struct {
	path string
	file *ini.File
	log  observability.Logger
}

// Load opens or creates the config file at path, backfilling any missing
// sections or keys. It always returns a usable Config.
func Load(path string, log observability.Logger) *Config {
	if log == nil {
		log = observability.NopLogger{}
	}

	file, err := ini.Load(path)
	if err != nil {
		file = ini.Empty()
	}

	modified := err != nil
	for section, options := range defaults {
		sec := file.Section(section)
		for key, value := range options {
			if !sec.HasKey(key) {
				sec.Key(key).SetValue(value)
				modified = true
			}
		}
	}

	c := &Config{path: path, file: file, log: log}
	if modified {
		if err := file.SaveTo(path); err != nil {
			log.Warn("could not save config file", observability.Error("err", err))
		}
	}
	return c
}

// DefaultPreset returns the preset name to auto-load at startup, or the
// empty string when none is configured.
func (c *Config) DefaultPreset() string {
	return c.file.Section("General").Key("default_preset").String()
}

// SetDefaultPreset stores the preset name and persists the file. On write
// failure the in-memory value is kept and the error returned for the caller
// to surface.
func (c *Config) SetDefaultPreset(name string) error {
	c.file.Section("General").Key("default_preset").SetValue(name)
	if err := c.file.SaveTo(c.path); err != nil {
		c.log.Warn("could not save config file", observability.Error("err", err))
		return err
	}
	return nil
}
