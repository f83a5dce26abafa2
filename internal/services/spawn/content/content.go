// Package content embeds the monster and setup tables shipped with spawning.
package content

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
)

//go:embed monsters.csv
var monstersCSV string

//go:embed setups.csv
var setupsCSV string

// MonstersCSV returns the embedded monster table.
func MonstersCSV() string {
	return monstersCSV
}

// SetupsCSV returns the embedded setup table.
func SetupsCSV() string {
	return setupsCSV
}

// Build parses catalog text and checks that every special unit has its
// stand-in monster.
func Build(monsterText, setupText string, opts catalog.ParseOptions) (*catalog.Catalog, error) {
	c, err := catalog.Build(monsterText, setupText, opts)
	if err != nil {
		return nil, err
	}
	if err := c.Monsters.CheckSpecials(); err != nil {
		return nil, fmt.Errorf("monsters: %w", err)
	}
	return c, nil
}

// Load builds the embedded catalog with opts.
func Load(opts catalog.ParseOptions) (*catalog.Catalog, error) {
	return Build(monstersCSV, setupsCSV, opts)
}

var defaultCatalog = sync.OnceValues(func() (*catalog.Catalog, error) {
	return Load(catalog.ParseOptions{})
})

// Default returns the embedded catalog built with default options. It is
// built once per process and panics when the embedded tables are invalid.
func Default() *catalog.Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("content: embedded catalog: %v", err))
	}
	return c
}
