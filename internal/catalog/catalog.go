// Package catalog is the read-only lookup table of selectable items per category.
package catalog

import (
	"context"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/party-share/internal/domain/party"
	dnderr "github.com/KirkDiggler/party-share/internal/errors"
)

// Option is one pickable item as shown to the user
type Option struct {
	Item party.Item
	// InUse marks items already placed in some slot; picking them is still allowed
	InUse bool
}

// Config holds configuration for a catalog
type Config struct {
	// Sources are fetched concurrently and merged in order
	Sources []Source
	// Language selects the collation used to order items by name
	Language language.Tag
}

// Catalog holds the loaded items. It is empty until Load succeeds.
type Catalog struct {
	sources []Source
	lang    language.Tag

	mu     sync.RWMutex
	loaded bool
	items  map[party.Category][]party.Item
}

// New creates an unloaded catalog
func New(cfg *Config) *Catalog {
	return &Catalog{
		sources: cfg.Sources,
		lang:    cfg.Language,
		items:   make(map[party.Category][]party.Item),
	}
}

// Load fetches every source and replaces the item pool. On any failure the
// pool is left empty and a catalog unavailable error is returned.
func (c *Catalog) Load(ctx context.Context) error {
	if len(c.sources) == 0 {
		return dnderr.CatalogUnavailable(nil, "no catalog source configured")
	}

	docs := make([]*Document, len(c.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, source := range c.sources {
		i, source := i, source
		g.Go(func() error {
			doc, err := source.Fetch(gctx)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.mu.Lock()
		c.items = make(map[party.Category][]party.Item)
		c.loaded = false
		c.mu.Unlock()
		return dnderr.CatalogUnavailable(err, "failed to load catalog")
	}

	items := c.merge(docs)

	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()

	log.Printf("Catalog: Loaded %d characters and %d remnants",
		len(items[party.CategoryCharacter]), len(items[party.CategoryRemnant]))
	return nil
}

func (c *Catalog) merge(docs []*Document) map[party.Category][]party.Item {
	collator := collate.New(c.lang)
	items := make(map[party.Category][]party.Item, len(party.Categories))

	for _, category := range party.Categories {
		seen := make(map[string]bool)
		var list []party.Item
		for _, doc := range docs {
			if doc == nil {
				continue
			}
			for _, item := range doc.Items(category) {
				if item.Name == "" || item.ImageRef == "" {
					log.Printf("Catalog: Skipping %s entry without name or image: %+v", category, item)
					continue
				}
				if seen[item.Name] {
					continue
				}
				seen[item.Name] = true
				list = append(list, item)
			}
		}
		sort.SliceStable(list, func(i, j int) bool {
			return collator.CompareString(list[i].Name, list[j].Name) < 0
		})
		items[category] = list
	}

	return items
}

// Loaded reports whether a load has succeeded
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Items returns a copy of the items of one category, sorted by name
func (c *Catalog) Items(category party.Category) []party.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := c.items[category]
	out := make([]party.Item, len(items))
	copy(out, items)
	return out
}

// Lookup finds an item by name
func (c *Catalog) Lookup(category party.Category, name string) (party.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items[category] {
		if item.Name == name {
			return item, nil
		}
	}
	return party.Item{}, dnderr.NotFoundf("no %s named '%s' in catalog", category, name).
		WithMeta("category", string(category)).
		WithMeta("name", name)
}
