package subst

import (
	"encoding/json"
	"os"

	"github.com/dlclark/regexp2"

	"github.com/wudi/pdfstamp/observability"
)

// Defaults is the built-in definition set, regenerated whenever the
// definitions file is missing or unusable.
var Defaults = []Definition{
	{
		Name:        "PartNumber",
		Description: "7-digit Part Identifier",
		Regex:       `(?<!\d)(?<PartNumber>\d{7})(?=[-\s]|$)`,
	},
	{
		Name:        "Version",
		Description: "4-Digit Part Version",
		Regex:       `(?<=-)\s*(?<Version>\d{4})(?=[-\s]|$)`,
	},
	{
		Name:        "DocType",
		Description: "3-Digit Document Type",
		Regex:       `(?<=-)\s*(?<DocType>\d{3})(?=[-\s]|$)`,
	},
	{
		Name:        "TabNumber",
		Description: "2-Digit Tab Number",
		Regex:       `(?<=-)\s*(?<TabNumber>\d{2})(?=\s|$)`,
	},
	{
		Name:        "Revision",
		Description: "2-Character Document Revision",
		Regex:       `REV\s+(?<Revision>[A-Z]{2})(?=\s|$)`,
	},
	{
		Name:        "Title",
		Description: "Full Part Name",
		Regex:       `REV\s+[A-Z]{2}\s+(?<Title>.+)$`,
	},
	{
		Name:        "DocNumber",
		Description: "Full Document Number",
		Regex:       `(?<DocNumber>\d{7}[-\d]*\s+REV\s+[A-Z]{2})`,
	},
}

// Load reads definitions from a JSON file. A missing, unreadable, or fully
// invalid file is replaced with the defaults, which are also written back so
// the user has a file to edit. Individual entries that are incomplete or
// fail to compile are dropped silently.
func Load(path string, log observability.Logger) []Definition {
	if log == nil {
		log = observability.NopLogger{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return regenerate(path, log)
	}

	var raw []Definition
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn("invalid substitutions file", observability.Error("err", err))
		return regenerate(path, log)
	}

	var valid []Definition
	for _, d := range raw {
		if d.Name == "" || d.Regex == "" {
			continue
		}
		if _, err := regexp2.Compile(d.Regex, regexp2.IgnoreCase); err != nil {
			continue
		}
		valid = append(valid, d)
	}
	if len(valid) == 0 {
		return regenerate(path, log)
	}
	return valid
}

// Save writes definitions as indented JSON.
func Save(path string, defs []Definition) error {
	data, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func regenerate(path string, log observability.Logger) []Definition {
	if err := Save(path, Defaults); err != nil {
		log.Warn("could not write default substitutions", observability.Error("err", err))
	}
	out := make([]Definition, len(Defaults))
	copy(out, Defaults)
	return out
}
