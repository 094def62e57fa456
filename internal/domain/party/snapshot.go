package party

import "fmt"

// Theme is the display theme flag serialized with the party
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeLight
)

// Valid reports whether t is a known theme. The empty theme means default.
func (t Theme) Valid() bool {
	return t == "" || t == ThemeLight || t == ThemeDark
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// MaxSlots bounds the per-category slot count
const MaxSlots = 32

// Layout is the fixed number of slots per category
type Layout struct {
	Characters int
	Remnants   int
}

// DefaultLayout is five main and five extra slots
var DefaultLayout = Layout{Characters: 5, Remnants: 5}

// Size returns the slot count for a category
func (l Layout) Size(category Category) int {
	switch category {
	case CategoryCharacter:
		return l.Characters
	case CategoryRemnant:
		return l.Remnants
	}
	return 0
}

// Validate checks both counts are within 1..MaxSlots
func (l Layout) Validate() error {
	for _, category := range Categories {
		if n := l.Size(category); n < 1 || n > MaxSlots {
			return fmt.Errorf("%s slot count %d must be between 1 and %d", category, n, MaxSlots)
		}
	}
	return nil
}

// Snapshot is the serializable state of every slot plus the theme.
// Position is significant; nil entries are empty slots.
type Snapshot struct {
	Characters []*Item `json:"characters"`
	Remnants   []*Item `json:"remnants"`
	Theme      Theme   `json:"theme"`
}

// EmptySnapshot returns an all-empty snapshot sized for the layout
func EmptySnapshot(layout Layout) Snapshot {
	return Snapshot{
		Characters: make([]*Item, layout.Characters),
		Remnants:   make([]*Item, layout.Remnants),
		Theme:      DefaultTheme,
	}
}

// Entries returns the entries of one category
func (s Snapshot) Entries(category Category) []*Item {
	switch category {
	case CategoryCharacter:
		return s.Characters
	case CategoryRemnant:
		return s.Remnants
	}
	return nil
}

// Filled counts non-empty entries across both categories
func (s Snapshot) Filled() int {
	n := 0
	for _, category := range Categories {
		for _, item := range s.Entries(category) {
			if item != nil {
				n++
			}
		}
	}
	return n
}

// Validate checks the structure a decoded snapshot must have
func (s Snapshot) Validate() error {
	if !s.Theme.Valid() {
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	for _, category := range Categories {
		entries := s.Entries(category)
		if len(entries) > MaxSlots {
			return fmt.Errorf("%s has %d entries, more than %d", category, len(entries), MaxSlots)
		}
		for i, item := range entries {
			if item == nil {
				continue
			}
			if err := item.Validate(); err != nil {
				return fmt.Errorf("%s: %w", SlotRef{Category: category, Index: i}, err)
			}
		}
	}
	return nil
}
