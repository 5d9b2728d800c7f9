// Package world defines the immutable location catalog. Locations are
// read-only reference data used to bias narrative prompts; they are not
// session state.
package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Location is one catalog entry.
type Location struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Danger is the location's danger rating in [1, 10].
	Danger int `yaml:"danger"`
	// Context is a free-text tag embedded in narrative prompts.
	Context string `yaml:"context"`
}

// Validate checks that the location satisfies basic invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty and Danger is in
// [1, 10]; returns an error on the first violation otherwise.
func (l *Location) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("location: id must not be empty")
	}
	if l.Name == "" {
		return fmt.Errorf("location %q: name must not be empty", l.ID)
	}
	if l.Danger < 1 || l.Danger > 10 {
		return fmt.Errorf("location %q: danger must be 1-10, got %d", l.ID, l.Danger)
	}
	return nil
}

// Catalog is an ordered, immutable set of locations indexed by ID and name.
type Catalog struct {
	ordered []*Location
	byID    map[string]*Location
	byName  map[string]*Location
}

// NewCatalog builds a Catalog from validated locations.
//
// Postcondition: Returns a Catalog preserving input order, or an error if any
// location fails validation or duplicates an ID.
func NewCatalog(locations []*Location) (*Catalog, error) {
	c := &Catalog{
		byID:   make(map[string]*Location, len(locations)),
		byName: make(map[string]*Location, len(locations)),
	}
	for _, loc := range locations {
		if err := loc.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[loc.ID]; exists {
			return nil, fmt.Errorf("location %q: duplicate id", loc.ID)
		}
		c.ordered = append(c.ordered, loc)
		c.byID[loc.ID] = loc
		c.byName[loc.Name] = loc
	}
	return c, nil
}

// All returns the locations in catalog order.
func (c *Catalog) All() []*Location {
	return c.ordered
}

// ByID returns the location with the given ID.
//
// Postcondition: Returns (location, true) if found, or (nil, false) otherwise.
func (c *Catalog) ByID(id string) (*Location, bool) {
	loc, ok := c.byID[id]
	return loc, ok
}

// ByName returns the location with the given display name.
//
// Postcondition: Returns (location, true) if found, or (nil, false) otherwise.
func (c *Catalog) ByName(name string) (*Location, bool) {
	loc, ok := c.byName[name]
	return loc, ok
}

// LoadLocations reads all *.yaml files in dir and returns the parsed locations.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all locations or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadLocations(dir string) ([]*Location, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading locations dir %q: %w", dir, err)
	}

	var locations []*Location
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		var loc Location
		if err := yaml.Unmarshal(data, &loc); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := loc.Validate(); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		locations = append(locations, &loc)
	}
	return locations, nil
}

// Builtin returns the default location catalog.
func Builtin() []*Location {
	return []*Location{
		{
			ID:          "hospital",
			Name:        "🏚️ Abandoned Hospital",
			Description: "Dark corridors echo with screams of the damned",
			Danger:      8,
			Context:     "medical facility, infected patients, surgical equipment, emergency protocols",
		},
		{
			ID:          "forest",
			Name:        "🌲 Cursed Forest",
			Description: "Ancient trees whisper forbidden secrets",
			Danger:      6,
			Context:     "dark woodland, mystical creatures, ancient rituals, hidden paths",
		},
		{
			ID:          "wasteland",
			Name:        "🏭 Nuclear Wasteland",
			Description: "Radiation spawns nightmarish mutations",
			Danger:      9,
			Context:     "radioactive zone, mutated beings, contamination, survival shelter",
		},
		{
			ID:          "castle",
			Name:        "🏰 Haunted Castle",
			Description: "Centuries of evil permeate these walls",
			Danger:      7,
			Context:     "ancient fortress, vengeful spirits, dark magic, hidden chambers",
		},
		{
			ID:          "metropolis",
			Name:        "🌊 Flooded Metropolis",
			Description: "Drowned city harbors aquatic horrors",
			Danger:      7,
			Context:     "submerged buildings, water creatures, drowning hazards, floating debris",
		},
		{
			ID:          "bunker",
			Name:        "🕳️ Underground Bunker",
			Description: "Last refuge or elaborate death trap?",
			Danger:      5,
			Context:     "military bunker, limited resources, claustrophobic spaces, security systems",
		},
	}
}
