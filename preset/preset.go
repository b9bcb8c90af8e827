// Package preset persists complete application presets: enable flags,
// content templates, per-paper-size visual configuration for three features,
// and security settings.
package preset

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/wudi/pdfstamp/config"
	"github.com/wudi/pdfstamp/pagesel"
	"github.com/wudi/pdfstamp/paper"
)

// TextSettings configures the text insertion feature.
type TextSettings struct {
	Enabled       bool
	Text          string
	ConfigsBySize map[paper.Key]*config.TextConfig
}

// TimestampSettings configures the timestamp insertion feature. Format uses
// strftime-style directives (see FormatTime).
type TimestampSettings struct {
	Enabled       bool
	Format        string
	Prefix        string
	ConfigsBySize map[paper.Key]*config.TextConfig
}

// StampSettings configures the image stamp feature.
type StampSettings struct {
	Enabled       bool
	StampPath     string
	ConfigsBySize map[paper.Key]*config.StampConfig
}

// SecuritySettings configures output encryption. The six permission flags
// compose the PDF permission bitmask.
type SecuritySettings struct {
	Enabled        bool   `json:"enabled"`
	MasterPassword string `json:"master_password"`
	AllowPrint     bool   `json:"allow_print"`
	AllowModify    bool   `json:"allow_modify"`
	AllowCopy      bool   `json:"allow_copy"`
	AllowAnnotate  bool   `json:"allow_annotate"`
	AllowFormFill  bool   `json:"allow_form_fill"`
	AllowAssemble  bool   `json:"allow_assemble"`
}

// Preset aggregates all feature settings. Created is a unix timestamp set
// once at construction; Modified stays nil until the preset is first
// overwritten.
type Preset struct {
	Name        string
	Created     float64
	Modified    *float64
	Description string

	Text      TextSettings
	Timestamp TimestampSettings
	Stamp     StampSettings
	Security  SecuritySettings
}

// New returns a preset with the creation timestamp set.
func New(name string) *Preset {
	return &Preset{Name: name, Created: float64(time.Now().Unix())}
}

// Touch records a modification timestamp.
func (p *Preset) Touch() {
	now := float64(time.Now().Unix())
	p.Modified = &now
}

// ----------------------------------------------------------------------
// JSON layout
//
// Per-size configs serialize as {family: {orientation: {...attrs...}}}.
// Two legacy forms are accepted on read: a flat feature-level
// page_selection/custom_pages pair that is migrated into every per-size
// config lacking its own, and a top-level "watermark" key standing in for
// "stamp_insertion".
// ----------------------------------------------------------------------

func nestText(m map[paper.Key]*config.TextConfig) map[string]map[string]*config.TextConfig {
	out := make(map[string]map[string]*config.TextConfig)
	for key, cfg := range m {
		if _, ok := out[key.Family]; !ok {
			out[key.Family] = make(map[string]*config.TextConfig)
		}
		out[key.Family][string(key.Orientation)] = cfg
	}
	return out
}

func nestStamp(m map[paper.Key]*config.StampConfig) map[string]map[string]*config.StampConfig {
	out := make(map[string]map[string]*config.StampConfig)
	for key, cfg := range m {
		if _, ok := out[key.Family]; !ok {
			out[key.Family] = make(map[string]*config.StampConfig)
		}
		out[key.Family][string(key.Orientation)] = cfg
	}
	return out
}

// flattenRaw expands the nested JSON structure into per-key raw messages.
// Keys of the form "A4|portrait" are accepted for very old files.
func flattenRaw(data map[string]json.RawMessage) map[paper.Key]json.RawMessage {
	out := make(map[paper.Key]json.RawMessage)
	for key, val := range data {
		if fam, orient, ok := strings.Cut(key, "|"); ok {
			out[paper.Key{Family: fam, Orientation: paper.Orientation(orient)}] = val
			continue
		}
		var modes map[string]json.RawMessage
		if err := json.Unmarshal(val, &modes); err != nil {
			continue
		}
		for mode, cfg := range modes {
			out[paper.Key{Family: key, Orientation: paper.Orientation(mode)}] = cfg
		}
	}
	return out
}

// hasOwnSelection reports whether a raw config carries its own
// page-selection keys.
func hasOwnSelection(raw json.RawMessage) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, ok := probe["page_selection"]
	return ok
}

func legacySelection(probe map[string]json.RawMessage) pagesel.Selection {
	sel := pagesel.Selection{Mode: pagesel.ModeAll}
	if v, ok := probe["page_selection"]; ok {
		var mode string
		if json.Unmarshal(v, &mode) == nil && mode != "" {
			sel.Mode = pagesel.Mode(mode)
		}
	}
	if v, ok := probe["custom_pages"]; ok {
		var custom string
		if json.Unmarshal(v, &custom) == nil {
			sel.Custom = custom
		}
	}
	return sel
}

func (s TextSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Enabled       bool                                     `json:"enabled"`
		Text          string                                   `json:"text"`
		ConfigsBySize map[string]map[string]*config.TextConfig `json:"configs_by_size"`
	}{s.Enabled, s.Text, nestText(s.ConfigsBySize)})
}

func (s *TextSettings) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	var raw struct {
		Enabled       bool                       `json:"enabled"`
		Text          string                     `json:"text"`
		ConfigsBySize map[string]json.RawMessage `json:"configs_by_size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	legacy := legacySelection(probe)

	s.Enabled = raw.Enabled
	s.Text = raw.Text
	s.ConfigsBySize = make(map[paper.Key]*config.TextConfig)
	for key, msg := range flattenRaw(raw.ConfigsBySize) {
		cfg := config.DefaultText()
		if err := json.Unmarshal(msg, cfg); err != nil {
			continue
		}
		if !hasOwnSelection(msg) {
			cfg.Selection = legacy
		}
		s.ConfigsBySize[key] = cfg
	}
	return nil
}

func (s TimestampSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Enabled       bool                                     `json:"enabled"`
		Format        string                                   `json:"format_string"`
		Prefix        string                                   `json:"prefix"`
		ConfigsBySize map[string]map[string]*config.TextConfig `json:"configs_by_size"`
	}{s.Enabled, s.Format, s.Prefix, nestText(s.ConfigsBySize)})
}

func (s *TimestampSettings) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	var raw struct {
		Enabled       bool                       `json:"enabled"`
		Format        string                     `json:"format_string"`
		Prefix        string                     `json:"prefix"`
		ConfigsBySize map[string]json.RawMessage `json:"configs_by_size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	legacy := legacySelection(probe)

	s.Enabled = raw.Enabled
	s.Format = raw.Format
	if s.Format == "" {
		s.Format = Formats[0].Pattern
	}
	s.Prefix = raw.Prefix
	s.ConfigsBySize = make(map[paper.Key]*config.TextConfig)
	for key, msg := range flattenRaw(raw.ConfigsBySize) {
		cfg := config.DefaultTimestamp()
		if err := json.Unmarshal(msg, cfg); err != nil {
			continue
		}
		if !hasOwnSelection(msg) {
			cfg.Selection = legacy
		}
		s.ConfigsBySize[key] = cfg
	}
	return nil
}

func (s StampSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Enabled       bool                                      `json:"enabled"`
		StampPath     string                                    `json:"stamp_path"`
		ConfigsBySize map[string]map[string]*config.StampConfig `json:"configs_by_size"`
	}{s.Enabled, s.StampPath, nestStamp(s.ConfigsBySize)})
}

func (s *StampSettings) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	var raw struct {
		Enabled       bool                       `json:"enabled"`
		StampPath     string                     `json:"stamp_path"`
		ConfigsBySize map[string]json.RawMessage `json:"configs_by_size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	legacy := legacySelection(probe)

	s.Enabled = raw.Enabled
	s.StampPath = raw.StampPath
	s.ConfigsBySize = make(map[paper.Key]*config.StampConfig)
	for key, msg := range flattenRaw(raw.ConfigsBySize) {
		cfg := config.DefaultStamp()
		if err := json.Unmarshal(msg, cfg); err != nil {
			continue
		}
		if !hasOwnSelection(msg) {
			cfg.Selection = legacy
		}
		s.ConfigsBySize[key] = cfg
	}
	return nil
}

func (p Preset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string            `json:"name"`
		Created     float64           `json:"created"`
		Modified    *float64          `json:"modified"`
		Description string            `json:"description"`
		Text        TextSettings      `json:"text_insertion"`
		Timestamp   TimestampSettings `json:"timestamp_insertion"`
		Stamp       StampSettings     `json:"stamp_insertion"`
		Security    SecuritySettings  `json:"pdf_security"`
	}{p.Name, p.Created, p.Modified, p.Description, p.Text, p.Timestamp, p.Stamp, p.Security})
}

func (p *Preset) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string             `json:"name"`
		Created     json.RawMessage    `json:"created"`
		Modified    json.RawMessage    `json:"modified"`
		Description string             `json:"description"`
		Text        *TextSettings      `json:"text_insertion"`
		Timestamp   *TimestampSettings `json:"timestamp_insertion"`
		Stamp       *StampSettings     `json:"stamp_insertion"`
		Watermark   *StampSettings     `json:"watermark"`
		Security    *SecuritySettings  `json:"pdf_security"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = raw.Name
	if p.Name == "" {
		p.Name = "Unnamed"
	}
	p.Description = raw.Description

	// Legacy files may carry string timestamps; coerce to the zero values.
	p.Created = 0
	var created float64
	if raw.Created != nil && json.Unmarshal(raw.Created, &created) == nil {
		p.Created = created
	}
	p.Modified = nil
	var modified float64
	if raw.Modified != nil && string(raw.Modified) != "null" &&
		json.Unmarshal(raw.Modified, &modified) == nil {
		p.Modified = &modified
	}

	p.Text = TextSettings{ConfigsBySize: map[paper.Key]*config.TextConfig{}}
	if raw.Text != nil {
		p.Text = *raw.Text
	}
	p.Timestamp = TimestampSettings{Format: Formats[0].Pattern, ConfigsBySize: map[paper.Key]*config.TextConfig{}}
	if raw.Timestamp != nil {
		p.Timestamp = *raw.Timestamp
	}
	// "watermark" is the pre-rename key for stamp settings.
	p.Stamp = StampSettings{ConfigsBySize: map[paper.Key]*config.StampConfig{}}
	if raw.Stamp != nil {
		p.Stamp = *raw.Stamp
	} else if raw.Watermark != nil {
		p.Stamp = *raw.Watermark
	}
	p.Security = SecuritySettings{}
	if raw.Security != nil {
		p.Security = *raw.Security
	}
	return nil
}
