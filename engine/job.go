// Package engine runs batch stamping jobs: open each document, apply the
// enabled features page by page, and save with optional encryption. One job
// runs on one worker; per-file failures are collected, never fatal.
package engine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/wudi/pdfstamp/config"
	"github.com/wudi/pdfstamp/preset"
)

// Features selects which operations a job performs.
type Features struct {
	Text      bool
	Timestamp bool
	Stamp     bool
	Security  bool
}

// TextFeature carries the text template and its per-size configuration.
type TextFeature struct {
	Template string
	Resolver config.Resolver[config.TextConfig]
}

// TimestampFeature carries the timestamp pattern and its per-size
// configuration.
type TimestampFeature struct {
	Prefix   string
	Format   string
	Resolver config.Resolver[config.TextConfig]
}

// StampFeature carries the stamp image path and its per-size configuration.
type StampFeature struct {
	Path     string
	Resolver config.Resolver[config.StampConfig]
}

// Job is the immutable payload of one batch run. Configuration maps are
// deep-copied at construction so the caller may keep editing its live
// settings while the job is in flight.
type Job struct {
	ID        string
	Files     []string
	InputRoot string
	OutputDir string

	Features  Features
	Text      TextFeature
	Timestamp TimestampFeature
	Stamp     StampFeature
	Security  preset.SecuritySettings
}

// NewJob snapshots a preset into a runnable job. Features that lack their
// required inputs (empty stamp path, empty master password) are disabled
// even when the preset enables them.
func NewJob(p *preset.Preset, files []string, inputRoot, outputDir string) *Job {
	job := &Job{
		ID:        uuid.NewString(),
		Files:     append([]string(nil), files...),
		InputRoot: inputRoot,
		OutputDir: outputDir,
		Features: Features{
			Text:      p.Text.Enabled,
			Timestamp: p.Timestamp.Enabled,
			Stamp:     p.Stamp.Enabled && p.Stamp.StampPath != "",
			Security:  p.Security.Enabled && strings.TrimSpace(p.Security.MasterPassword) != "",
		},
		Text: TextFeature{
			Template: p.Text.Text,
			Resolver: config.Resolver[config.TextConfig]{
				Configs: config.CloneMap(p.Text.ConfigsBySize),
				Default: config.DefaultText(),
			},
		},
		Timestamp: TimestampFeature{
			Prefix: p.Timestamp.Prefix,
			Format: p.Timestamp.Format,
			Resolver: config.Resolver[config.TextConfig]{
				Configs: config.CloneMap(p.Timestamp.ConfigsBySize),
				Default: config.DefaultTimestamp(),
			},
		},
		Stamp: StampFeature{
			Path: p.Stamp.StampPath,
			Resolver: config.Resolver[config.StampConfig]{
				Configs: config.CloneMap(p.Stamp.ConfigsBySize),
				Default: config.DefaultStamp(),
			},
		},
		Security: p.Security,
	}
	if job.Timestamp.Format == "" {
		job.Timestamp.Format = preset.Formats[0].Pattern
	}
	return job
}
