package party

import (
	dnderr "github.com/KirkDiggler/party-share/internal/errors"
)

// Store holds the fixed slot collections of one party and its theme.
// It is not safe for concurrent use; the party service serializes access.
type Store struct {
	layout Layout
	slots  map[Category][]Slot
	theme  Theme
}

// NewStore creates a store with every slot empty. The layout never changes afterwards.
func NewStore(layout Layout) (*Store, error) {
	if err := layout.Validate(); err != nil {
		return nil, dnderr.InvalidArgument(err.Error())
	}

	s := &Store{
		layout: layout,
		slots:  make(map[Category][]Slot, len(Categories)),
		theme:  DefaultTheme,
	}
	for _, category := range Categories {
		slots := make([]Slot, layout.Size(category))
		for i := range slots {
			slots[i] = Slot{category: category}
		}
		s.slots[category] = slots
	}
	return s, nil
}

// Layout returns the slot counts
func (s *Store) Layout() Layout {
	return s.layout
}

func (s *Store) slot(ref SlotRef) (*Slot, error) {
	if !ref.Category.Valid() {
		return nil, dnderr.InvalidArgumentf("unknown category %q", ref.Category).
			WithMeta("category", string(ref.Category))
	}
	slots := s.slots[ref.Category]
	if ref.Index < 0 || ref.Index >= len(slots) {
		return nil, dnderr.InvalidArgumentf("slot %s out of range (have %d)", ref, len(slots)).
			WithMeta("slot", ref.String())
	}
	return &slots[ref.Index], nil
}

// Slot returns a copy of one slot
func (s *Store) Slot(ref SlotRef) (Slot, error) {
	slot, err := s.slot(ref)
	if err != nil {
		return Slot{}, err
	}
	return Slot{category: slot.category, item: slot.Item()}, nil
}

// Slots returns copies of every slot in a category
func (s *Store) Slots(category Category) []Slot {
	slots := s.slots[category]
	out := make([]Slot, len(slots))
	for i, slot := range slots {
		out[i] = Slot{category: slot.category, item: slot.Item()}
	}
	return out
}

// Fill copies item into the slot. The same item may occupy several slots.
func (s *Store) Fill(ref SlotRef, item Item) error {
	if err := item.Validate(); err != nil {
		return dnderr.InvalidArgument(err.Error())
	}
	slot, err := s.slot(ref)
	if err != nil {
		return err
	}
	slot.item = &item
	return nil
}

// Clear empties the slot
func (s *Store) Clear(ref SlotRef) error {
	slot, err := s.slot(ref)
	if err != nil {
		return err
	}
	slot.item = nil
	return nil
}

// Swap exchanges the contents of two slots of the same category, emptiness included.
// Slots of different categories are rejected and nothing changes.
func (s *Store) Swap(a, b SlotRef) error {
	if a.Category != b.Category {
		return dnderr.InvalidArgumentf("cannot swap %s with %s across categories", a, b).
			WithMeta("from", a.String()).
			WithMeta("to", b.String())
	}
	slotA, err := s.slot(a)
	if err != nil {
		return err
	}
	slotB, err := s.slot(b)
	if err != nil {
		return err
	}
	slotA.item, slotB.item = slotB.item, slotA.item
	return nil
}

// Reset empties every slot in every category. The theme is kept.
func (s *Store) Reset() {
	for _, category := range Categories {
		for i := range s.slots[category] {
			s.slots[category][i].item = nil
		}
	}
}

// Theme returns the current theme
func (s *Store) Theme() Theme {
	return s.theme
}

// SetTheme changes the theme; the empty theme selects the default
func (s *Store) SetTheme(theme Theme) error {
	if !theme.Valid() {
		return dnderr.InvalidArgumentf("unknown theme %q", theme)
	}
	if theme == "" {
		theme = DefaultTheme
	}
	s.theme = theme
	return nil
}

// InUse reports whether any slot currently shows the image
func (s *Store) InUse(imageRef string) bool {
	for _, category := range Categories {
		for _, slot := range s.slots[category] {
			if slot.item != nil && slot.item.ImageRef == imageRef {
				return true
			}
		}
	}
	return false
}

// ToSnapshot exports every slot. Entries are copies, one per slot.
func (s *Store) ToSnapshot() Snapshot {
	snap := Snapshot{
		Characters: make([]*Item, s.layout.Characters),
		Remnants:   make([]*Item, s.layout.Remnants),
		Theme:      s.theme,
	}
	for _, category := range Categories {
		entries := snap.Entries(category)
		for i, slot := range s.slots[category] {
			entries[i] = slot.Item()
		}
	}
	return snap
}

// ApplySnapshot imports a snapshot without resizing. Missing entries clear their
// slots and entries beyond the slot count are ignored.
func (s *Store) ApplySnapshot(snap Snapshot) error {
	if !snap.Theme.Valid() {
		return dnderr.InvalidArgumentf("unknown theme %q", snap.Theme)
	}
	for _, category := range Categories {
		entries := snap.Entries(category)
		for i, entry := range entries {
			if i >= len(s.slots[category]) {
				break
			}
			if entry == nil {
				continue
			}
			if err := entry.Validate(); err != nil {
				return dnderr.InvalidArgumentf("%s: %v", SlotRef{Category: category, Index: i}, err)
			}
		}
	}

	for _, category := range Categories {
		entries := snap.Entries(category)
		for i := range s.slots[category] {
			var item *Item
			if i < len(entries) && entries[i] != nil {
				copied := *entries[i]
				item = &copied
			}
			s.slots[category][i].item = item
		}
	}

	theme := snap.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	s.theme = theme
	return nil
}
