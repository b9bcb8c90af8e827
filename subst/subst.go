// Package subst extracts structured metadata from filenames via cascading
// regular expressions and substitutes it into text templates.
package subst

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/wudi/pdfstamp/observability"
)

// Definition is one named extraction rule. Regex must contain a named
// capture group; by convention the group matches Name. The dlclark/regexp2
// engine is used so definitions may rely on lookbehind and lookahead.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Regex       string `json:"regex"`
}

type compiledDef struct {
	def Definition
	re  *regexp2.Regexp
}

// Engine runs an ordered list of definitions against filenames and rewrites
// templates with the captured values.
type Engine struct {
	defs []compiledDef
}

// placeholder matches $Identifier tokens inside template text.
var placeholder = regexp.MustCompile(`\$(\w+)`)

// bareLine matches a trimmed line that is exactly one placeholder.
var bareLine = regexp.MustCompile(`^\$(\w+)$`)

// NewEngine compiles the given definitions case-insensitively. Definitions
// whose regex fails to compile are dropped with a warning and never surface
// during processing.
func NewEngine(defs []Definition, log observability.Logger) *Engine {
	if log == nil {
		log = observability.NopLogger{}
	}
	e := &Engine{}
	for _, d := range defs {
		re, err := regexp2.Compile(d.Regex, regexp2.IgnoreCase)
		if err != nil {
			log.Warn("dropping substitution definition",
				observability.String("name", d.Name),
				observability.Error("err", err))
			continue
		}
		e.defs = append(e.defs, compiledDef{def: d, re: re})
	}
	return e
}

// Definitions returns the rules that compiled, in order.
func (e *Engine) Definitions() []Definition {
	out := make([]Definition, len(e.defs))
	for i, d := range e.defs {
		out[i] = d.def
	}
	return out
}

// Extract runs every definition against the filename's base name (extension
// stripped) and merges all non-empty named captures into one flat map.
// Later definitions overwrite earlier captures on key collision.
func (e *Engine) Extract(filename string) map[string]string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	values := make(map[string]string)
	for _, cd := range e.defs {
		m, err := cd.re.FindStringMatch(base)
		if err != nil || m == nil {
			continue
		}
		for _, g := range m.Groups() {
			if g.Name == "" || isNumeric(g.Name) {
				continue
			}
			if v := strings.TrimSpace(g.String()); v != "" {
				values[g.Name] = v
			}
		}
	}
	return values
}

// Apply substitutes $Placeholders in template with values extracted from
// filename. A line that is exactly one unresolved placeholder is dropped
// entirely; an unresolved placeholder inline within other text is replaced
// with the empty string. Both cases record the key as missing.
func (e *Engine) Apply(template, filename string) (string, map[string]bool) {
	values := e.Extract(filename)
	missing := make(map[string]bool)

	var kept []string
	for _, line := range strings.Split(template, "\n") {
		if m := bareLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if _, ok := values[m[1]]; !ok {
				missing[m[1]] = true
				continue
			}
		}
		kept = append(kept, line)
	}

	resolved := placeholder.ReplaceAllStringFunc(strings.Join(kept, "\n"), func(tok string) string {
		key := tok[1:]
		if v, ok := values[key]; ok {
			return v
		}
		missing[key] = true
		return ""
	})

	return resolved, missing
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
