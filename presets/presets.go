// Package presets holds named parameter object specifications: the builtin
// ones embedded in the binary and the user's own, read from the presets
// directory of the pogen config directory. Each preset is a .yml file under
// presets/<library>/; its name is the file name with underscores as spaces.
package presets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/vsariola/pogen/config"
	"github.com/vsariola/pogen/po"
	"gopkg.in/yaml.v2"
)

//go:embed presets/*
var builtinFS embed.FS

type (
	Preset struct {
		Name    string     `yaml:"-"`
		Library po.Library `yaml:"-"`
		User    bool       `yaml:"-"`
		Spec    string
		Doc     string `yaml:",omitempty"`
	}

	Presets []Preset
)

// Load returns the builtin presets and the user presets, sorted by library and
// name. Files that do not parse, or that are not in a library directory, are
// skipped.
func Load() Presets {
	var ret Presets
	ret.loadFromFs(builtinFS, false)
	if dir, err := userDir(); err == nil {
		ret.loadFromFs(os.DirFS(filepath.Dir(dir)), true)
	}
	sort.Sort(ret)
	return ret
}

func userDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, config.Dir, "presets"), nil
}

func (p *Presets) loadFromFs(fsys fs.FS, user bool) {
	fs.WalkDir(fsys, "presets", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != ".yml" {
			return nil
		}
		parts := strings.Split(strings.TrimSuffix(name, ".yml"), "/")
		if len(parts) != 3 {
			return nil
		}
		lib, err := po.ParseLibrary(parts[1])
		if err != nil {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil
		}
		var preset Preset
		if yaml.UnmarshalStrict(data, &preset) != nil || preset.Spec == "" {
			return nil
		}
		preset.Name = filenameToName(parts[2])
		preset.Library = lib
		preset.User = user
		*p = append(*p, preset)
		return nil
	})
}

// Find returns the preset with the name, case-insensitively. A user preset
// shadows a builtin one with the same name.
func (p Presets) Find(name string) (Preset, bool) {
	var found Preset
	ok := false
	for _, preset := range p {
		if strings.EqualFold(preset.Name, name) && (!ok || preset.User) {
			found, ok = preset, true
		}
	}
	return found, ok
}

// New creates the parameter object of the preset.
func (p Preset) New(f *po.Factory) (po.PO, error) {
	ret, err := f.New(p.Spec, p.Library)
	if err != nil {
		return nil, fmt.Errorf("preset %v: %w", p.Name, err)
	}
	return ret, nil
}

// Save writes a user preset, overwriting any existing user preset with the
// same name.
func Save(preset Preset) error {
	dir, err := userDir()
	if err != nil {
		return fmt.Errorf("could not find the user config directory: %v", err)
	}
	dir = filepath.Join(dir, preset.Library.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create the preset directory: %v", err)
	}
	data, err := yaml.Marshal(preset)
	if err != nil {
		return fmt.Errorf("could not marshal the preset: %v", err)
	}
	return os.WriteFile(filepath.Join(dir, nameToFilename(preset.Name)+".yml"), data, 0644)
}

// Delete removes a user preset.
func Delete(preset Preset) error {
	dir, err := userDir()
	if err != nil {
		return fmt.Errorf("could not find the user config directory: %v", err)
	}
	return os.Remove(filepath.Join(dir, preset.Library.String(), nameToFilename(preset.Name)+".yml"))
}

func filenameToName(filename string) string {
	return strings.ReplaceAll(filename, "_", " ")
}

var specialChars = regexp.MustCompile("[^a-zA-Z0-9 _-]+")

func nameToFilename(name string) string {
	return strings.ReplaceAll(specialChars.ReplaceAllString(name, ""), " ", "_")
}

func (p Presets) Len() int { return len(p) }
func (p Presets) Less(i, j int) bool {
	if p[i].Library != p[j].Library {
		return p[i].Library < p[j].Library
	}
	if p[i].Name != p[j].Name {
		return p[i].Name < p[j].Name
	}
	return !p[i].User && p[j].User
}
func (p Presets) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
