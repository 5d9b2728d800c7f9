package character

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template defines a reusable species archetype. Templates are immutable
// catalog entries used only at character-creation time.
type Template struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Emoji  string `yaml:"emoji"`
	HP     int    `yaml:"hp"`
	Attack int    `yaml:"attack"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, HP >= 1, and
// Attack >= 1; returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("species template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("species template %q: name must not be empty", t.ID)
	}
	if t.HP < 1 {
		return fmt.Errorf("species template %q: hp must be >= 1", t.ID)
	}
	if t.Attack < 1 {
		return fmt.Errorf("species template %q: attack must be >= 1", t.ID)
	}
	return nil
}

// LoadTemplateFromBytes parses a single species template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing species YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// Builtin returns the default species catalog. The game runs without a
// content directory; LoadTemplates overrides this set when one is present.
func Builtin() []*Template {
	return []*Template{
		{ID: "vampire", Name: "Vampire", Emoji: "🧛", HP: 120, Attack: 25},
		{ID: "werewolf", Name: "Werewolf", Emoji: "🐺", HP: 150, Attack: 30},
		{ID: "witch", Name: "Witch", Emoji: "🧙‍♀️", HP: 80, Attack: 35},
		{ID: "fallen-angel", Name: "Fallen Angel", Emoji: "👼", HP: 100, Attack: 40},
		{ID: "demon", Name: "Demon", Emoji: "👹", HP: 140, Attack: 32},
		{ID: "zombie", Name: "Zombie", Emoji: "🧟‍♂️", HP: 90, Attack: 20},
		{ID: "ghost", Name: "Ghost", Emoji: "👻", HP: 70, Attack: 45},
		{ID: "dragon", Name: "Dragon", Emoji: "🐉", HP: 200, Attack: 50},
		{ID: "phoenix", Name: "Phoenix", Emoji: "🔥", HP: 110, Attack: 38},
		{ID: "banshee", Name: "Banshee", Emoji: "💀", HP: 85, Attack: 42},
	}
}
