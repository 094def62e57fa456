package party

import (
	"fmt"
	"unicode/utf8"
)

// Category tags a slot collection and the catalog list that feeds it
type Category string

const (
	CategoryCharacter Category = "character"
	CategoryRemnant   Category = "remnant"
)

// Categories lists every category in display order
var Categories = []Category{CategoryCharacter, CategoryRemnant}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	return c == CategoryCharacter || c == CategoryRemnant
}

// ParseCategory accepts the singular and plural spellings used by links and the CLI
func ParseCategory(raw string) (Category, error) {
	switch raw {
	case "character", "characters", "main":
		return CategoryCharacter, nil
	case "remnant", "remnants", "extra":
		return CategoryRemnant, nil
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// Item is a selectable catalog entry. Slots hold value copies of it.
type Item struct {
	Name      string `json:"name" yaml:"name"`
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	ImageRef  string `json:"image" yaml:"image"`
}

// Validate checks the fields a filled slot needs
func (i Item) Validate() error {
	if i.ImageRef == "" {
		return fmt.Errorf("item %q has no image reference", i.Name)
	}
	for field, value := range map[string]string{
		"name":      i.Name,
		"attribute": i.Attribute,
		"image":     i.ImageRef,
	} {
		if !utf8.ValidString(value) {
			return fmt.Errorf("item %s is not valid UTF-8", field)
		}
	}
	return nil
}

// SlotRef addresses one slot
type SlotRef struct {
	Category Category `json:"category"`
	Index    int      `json:"index"`
}

func (r SlotRef) String() string {
	return fmt.Sprintf("%s[%d]", r.Category, r.Index)
}

// Slot is one fixed position. Its category is set at creation and never changes.
type Slot struct {
	category Category
	item     *Item
}

// Category returns the slot's category
func (s Slot) Category() Category { return s.category }

// Empty reports whether the slot holds nothing
func (s Slot) Empty() bool { return s.item == nil }

// Item returns a copy of the held item, or nil when empty
func (s Slot) Item() *Item {
	if s.item == nil {
		return nil
	}
	item := *s.item
	return &item
}
