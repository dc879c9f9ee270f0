// Package refdata holds the static footprint and reward tables. They are
// loaded once at startup and never mutated afterwards.
package refdata

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

type Reward struct {
	ID          string `yaml:"id" json:"id"`
	Type        string `yaml:"type" json:"type"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Cost        int64  `yaml:"cost" json:"cost"`
}

type footprintEntry struct {
	Name string `yaml:"name"`
	Kg   string `yaml:"kg"`
}

type file struct {
	Footprint []footprintEntry `yaml:"footprint"`
	Rewards   []Reward         `yaml:"rewards"`
}

type Tables struct {
	footprint map[string]decimal.Decimal
	rewards   map[string]Reward
	order     []string
}

// Default returns the tables compiled into the binary.
func Default() (*Tables, error) {
	return Parse(defaultTables)
}

// Load reads the tables from path, or the embedded copy when path is empty.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference tables: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Tables, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse reference tables: %w", err)
	}

	t := &Tables{
		footprint: make(map[string]decimal.Decimal, len(f.Footprint)),
		rewards:   make(map[string]Reward, len(f.Rewards)),
	}
	for _, e := range f.Footprint {
		kg, err := decimal.NewFromString(e.Kg)
		if err != nil {
			return nil, fmt.Errorf("footprint %q: %w", e.Name, err)
		}
		if kg.IsNegative() {
			return nil, fmt.Errorf("footprint %q: negative value", e.Name)
		}
		t.footprint[strings.ToLower(e.Name)] = kg
	}
	for _, r := range f.Rewards {
		if r.ID == "" || r.Cost <= 0 {
			return nil, fmt.Errorf("reward %q: id and positive cost required", r.ID)
		}
		if _, dup := t.rewards[r.ID]; dup {
			return nil, fmt.Errorf("reward %q: duplicate id", r.ID)
		}
		t.rewards[r.ID] = r
		t.order = append(t.order, r.ID)
	}
	sort.Strings(t.order)
	return t, nil
}

// Footprint resolves the per-unit footprint saved for an item name. Only an
// exact case-insensitive match counts; anything else is zero.
func (t *Tables) Footprint(name string) decimal.Decimal {
	if kg, ok := t.footprint[strings.ToLower(name)]; ok {
		return kg
	}
	return decimal.Zero
}

func (t *Tables) Reward(id string) (Reward, bool) {
	r, ok := t.rewards[id]
	return r, ok
}

func (t *Tables) Rewards() []Reward {
	out := make([]Reward, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rewards[id])
	}
	return out
}
