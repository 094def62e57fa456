package events

// Event type constants
const (
	EventTypePartyLoaded   EventType = "party_loaded"
	EventTypeSlotFilled    EventType = "slot_filled"
	EventTypeSlotCleared   EventType = "slot_cleared"
	EventTypeSlotsSwapped  EventType = "slots_swapped"
	EventTypePartyReset    EventType = "party_reset"
	EventTypeThemeChanged  EventType = "theme_changed"
	EventTypePartyImported EventType = "party_imported"
)

// AllEventTypes lists every event the party service emits
var AllEventTypes = []EventType{
	EventTypePartyLoaded,
	EventTypeSlotFilled,
	EventTypeSlotCleared,
	EventTypeSlotsSwapped,
	EventTypePartyReset,
	EventTypeThemeChanged,
	EventTypePartyImported,
}
