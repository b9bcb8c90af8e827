package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/wudi/pdfstamp/observability"
)

// ErrExists is returned when saving or importing would clobber an existing
// preset without permission.
var ErrExists = errors.New("preset already exists")

// Info describes one preset file as seen by List. Invalid files are listed
// with Valid false so callers can disable load actions on them.
type Info struct {
	Name        string
	Created     float64
	Modified    *float64
	Description string
	Path        string
	Valid       bool
}

// Manager handles the preset file lifecycle inside one folder.
type Manager struct {
	dir string
	log observability.Logger
}

// NewManager ensures the preset folder exists.
func NewManager(dir string, log observability.Logger) (*Manager, error) {
	if log == nil {
		log = observability.NopLogger{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create presets folder: %w", err)
	}
	return &Manager{dir: dir, log: log}, nil
}

// illegal filename characters replaced by their full-width equivalents so
// names stay readable without colliding.
var fullWidth = strings.NewReplacer(
	"<", "＜", ">", "＞", ":", "：", `"`, "＂",
	"/", "／", `\`, "＼", "|", "｜", "?", "？", "*", "＊",
)

var squeeze = regexp.MustCompile(`[\s_]+`)

// SanitizeName turns a preset name into a filename-safe string.
func SanitizeName(name string) string {
	safe := strings.TrimSpace(fullWidth.Replace(name))
	safe = squeeze.ReplaceAllString(safe, "_")
	if len(safe) > 200 {
		safe = safe[:200]
	}
	safe = strings.Trim(safe, "_")
	if safe == "" {
		return "unnamed"
	}
	return safe
}

// Path returns the file path a preset name maps to.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dir, SanitizeName(name)+".json")
}

// Exists reports whether a preset file for name is present.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.Path(name))
	return err == nil
}

// Save writes the preset. Overwriting an existing file requires overwrite
// and stamps the modification time; the original creation time is kept.
func (m *Manager) Save(p *Preset, overwrite bool) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset name cannot be empty")
	}
	path := m.Path(p.Name)
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && !overwrite {
		return fmt.Errorf("preset %q: %w", p.Name, ErrExists)
	}
	if exists {
		p.Touch()
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save preset %q: %w", p.Name, err)
	}
	return nil
}

// Load reads a preset by name.
func (m *Manager) Load(name string) (*Preset, error) {
	return m.LoadPath(m.Path(name))
}

// LoadPath reads a preset from an explicit file path.
func (m *Manager) LoadPath(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid preset file %s: %w", filepath.Base(path), err)
	}
	return &p, nil
}

// Delete removes a preset file.
func (m *Manager) Delete(name string) error {
	if err := os.Remove(m.Path(name)); err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	return nil
}

// Rename loads a preset, saves it under the new name, and removes the old
// file. The new name must be free.
func (m *Manager) Rename(oldName, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return errors.New("new name cannot be empty")
	}
	if oldName == newName {
		return nil
	}
	if m.Exists(newName) {
		return fmt.Errorf("preset %q: %w", newName, ErrExists)
	}
	p, err := m.Load(oldName)
	if err != nil {
		return err
	}
	p.Name = newName
	if err := m.Save(p, false); err != nil {
		return err
	}
	if err := os.Remove(m.Path(oldName)); err != nil {
		m.log.Warn("renamed preset but could not remove old file",
			observability.String("name", oldName),
			observability.Error("err", err))
	}
	return nil
}

// List returns all preset files sorted newest first (by modification time,
// falling back to creation time). Unreadable files appear as invalid
// entries rather than being hidden.
func (m *Manager) List() []Info {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil
	}

	var infos []Info
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		path := filepath.Join(m.dir, e.Name())
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))

		p, err := m.LoadPath(path)
		if err != nil {
			infos = append(infos, Info{
				Name:        base,
				Description: "(Invalid preset file)",
				Path:        path,
			})
			continue
		}
		name := p.Name
		if name == "" {
			name = base
		}
		infos = append(infos, Info{
			Name:        name,
			Created:     p.Created,
			Modified:    p.Modified,
			Description: p.Description,
			Path:        path,
			Valid:       true,
		})
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return sortKey(infos[i]) > sortKey(infos[j])
	})
	return infos
}

func sortKey(i Info) float64 {
	if i.Modified != nil && *i.Modified != 0 {
		return *i.Modified
	}
	return i.Created
}

// Export writes a copy of the named preset to an arbitrary path.
func (m *Manager) Export(name, dest string) error {
	p, err := m.Load(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("export preset %q: %w", name, err)
	}
	return nil
}

// Import copies a preset file into the managed folder, optionally renaming
// it. Importing over an existing preset is refused.
func (m *Manager) Import(src, newName string) error {
	p, err := m.LoadPath(src)
	if err != nil {
		return err
	}
	if newName != "" {
		p.Name = newName
	}
	if m.Exists(p.Name) {
		return fmt.Errorf("preset %q: %w", p.Name, ErrExists)
	}
	return m.Save(p, false)
}
