package main

import (
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"

	"gitlab.com/zephyrtronium/walker"
)

// Config is a walker-roll weights file.
type Config struct {
	// Category is the ordered list of categories to sample over. Order
	// matters: the table reports draws by position.
	Category []Category `toml:"category"`
}

// Category is one weighted outcome.
type Category struct {
	// Name is the label printed for this category.
	Name string `toml:"name"`
	// Weight is the category's relative weight. Zero excludes the category.
	Weight float64 `toml:"weight"`
}

// Load loads a weights table from a TOML configuration like
//
//	[[category]]
//	name = "apple"
//	weight = 2
//
//	[[category]]
//	name = "orange"
//	weight = 7
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("couldn't decode weights: %w", err)
	}
	return &cfg, nil
}

// Names returns the category labels in order.
func (cfg *Config) Names() []string {
	names := make([]string, len(cfg.Category))
	for i, c := range cfg.Category {
		names[i] = c.Name
	}
	return names
}

// Builder creates a table builder from the configured weights, using the
// integer weight path when every weight is integral and quantizing
// proportions otherwise.
func (cfg *Config) Builder() *walker.Builder {
	ints := make([]uint32, len(cfg.Category))
	for i, c := range cfg.Category {
		w := c.Weight
		if w < 0 || w > math.MaxUint32 || w != math.Trunc(w) {
			floats := make([]float64, len(cfg.Category))
			for j, c := range cfg.Category {
				floats[j] = c.Weight
			}
			return walker.NewFloatBuilder(floats)
		}
		ints[i] = uint32(w)
	}
	return walker.NewBuilder(ints)
}
