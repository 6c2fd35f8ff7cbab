// Package catalog resuelve fichas de razas desde un catálogo TOML
// (embebido por defecto, reemplazable con BREED_CATALOG_PATH).
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"

	"github.com/weijenchou/dogdietlinebot/internal/ports/breeds"
)

//go:embed catalog.toml
var defaultCatalog []byte

type fileSchema struct {
	Breeds []breedSchema `toml:"breeds"`
}

type breedSchema struct {
	Name             string   `toml:"name"`
	Aliases          []string `toml:"aliases"`
	Height           string   `toml:"height"`
	Weight           string   `toml:"weight"`
	Lifespan         string   `toml:"lifespan"`
	Health           string   `toml:"health"`
	RecommendedTests string   `toml:"recommended_tests"`
	WhatToFeed       string   `toml:"what_to_feed"`
	HowToFeed        string   `toml:"how_to_feed"`
	NutritionalTips  string   `toml:"nutritional_tips"`
}

// Catalog es inmutable tras cargarse; seguro para uso concurrente.
type Catalog struct {
	byKey map[string]breeds.Info
	names []string
}

// key normaliza: sin mayúsculas, guiones como espacios, espacios colapsados.
// Un Caser no es seguro entre goroutines, por eso se crea en cada llamada.
func key(name string) string {
	name = strings.ReplaceAll(name, "-", " ")
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

func LoadDefault() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open breed catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Catalog, error) {
	var file fileSchema
	if err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse breed catalog: %w", err)
	}

	c := &Catalog{byKey: make(map[string]breeds.Info, len(file.Breeds)*2)}
	for _, b := range file.Breeds {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return nil, errors.New("breed catalog: entry without name")
		}
		info := breeds.Info{
			Name:             name,
			Height:           b.Height,
			Weight:           b.Weight,
			Lifespan:         b.Lifespan,
			Health:           b.Health,
			RecommendedTests: b.RecommendedTests,
			WhatToFeed:       b.WhatToFeed,
			HowToFeed:        b.HowToFeed,
			NutritionalTips:  b.NutritionalTips,
		}
		for _, k := range append([]string{name}, b.Aliases...) {
			k = key(k)
			if k == "" {
				continue
			}
			if prev, dup := c.byKey[k]; dup && prev.Name != name {
				return nil, fmt.Errorf("breed catalog: %q used by %q and %q", k, prev.Name, name)
			}
			c.byKey[k] = info
		}
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c, nil
}

func (c *Catalog) GetBreedInfo(_ context.Context, name string) (breeds.Info, error) {
	info, ok := c.byKey[key(name)]
	if !ok {
		return breeds.Info{}, breeds.ErrNotFound
	}
	return info, nil
}

// Names devuelve los nombres canónicos ordenados.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}
