package party

import (
	"context"
	"log"
	"sync"

	"github.com/KirkDiggler/party-share/internal/catalog"
	"github.com/KirkDiggler/party-share/internal/clipboard"
	"github.com/KirkDiggler/party-share/internal/codec"
	partydomain "github.com/KirkDiggler/party-share/internal/domain/party"
	dnderr "github.com/KirkDiggler/party-share/internal/errors"
	"github.com/KirkDiggler/party-share/internal/events"
	"github.com/KirkDiggler/party-share/internal/location"
	"github.com/KirkDiggler/party-share/internal/repositories/localstore"
	"github.com/KirkDiggler/party-share/internal/uuid"
)

// DefaultStorageKey is the local storage key the snapshot JSON is kept under
const DefaultStorageKey = "partyData"

// Source names where the startup state came from
type Source string

const (
	SourceToken   Source = "token"
	SourceStorage Source = "storage"
	SourceEmpty   Source = "empty"
)

// Catalog is the read-only item lookup the service picks from
type Catalog interface {
	Load(ctx context.Context) error
	Items(category partydomain.Category) []partydomain.Item
	Lookup(category partydomain.Category, name string) (partydomain.Item, error)
}

// Service owns one party: its slots, their persistence and their share link
type Service interface {
	// Start resolves the initial state from the share token, then local storage, then empty
	Start(ctx context.Context) (Source, error)

	// LoadCatalog awaits the catalog; on failure the option pool stays empty
	LoadCatalog(ctx context.Context) error

	// Snapshot returns the current state
	Snapshot() partydomain.Snapshot

	// Token returns the share token for the current state
	Token() (string, error)

	// Fill places a copy of item in a slot
	Fill(ctx context.Context, ref partydomain.SlotRef, item partydomain.Item) error

	// Clear empties a slot
	Clear(ctx context.Context, ref partydomain.SlotRef) error

	// Swap exchanges two slots of the same category
	Swap(ctx context.Context, a, b partydomain.SlotRef) error

	// Reset empties every slot, keeping the theme
	Reset(ctx context.Context) error

	// SetTheme changes the theme
	SetTheme(ctx context.Context, theme partydomain.Theme) error

	// ToggleTheme flips between light and dark
	ToggleTheme(ctx context.Context) (partydomain.Theme, error)

	// Import applies a bare token or a full share link
	Import(ctx context.Context, raw string) error

	// ShareLink returns the current address with the token parameter set
	ShareLink() (string, error)

	// ShareParty copies the share link to the clipboard and returns it
	ShareParty(ctx context.Context) (string, error)

	// Options lists the catalog items of a category, marking those already in use
	Options(category partydomain.Category) []catalog.Option

	// OnSlotActivated makes ref the pick target and returns its options
	OnSlotActivated(ref partydomain.SlotRef) ([]catalog.Option, error)

	// SelectOption fills the pick target with the named catalog item
	SelectOption(ctx context.Context, name string) error

	// CancelPick forgets the pick target
	CancelPick()

	// OnSlotsSwapped handles a drag-and-drop between two slots
	OnSlotsSwapped(ctx context.Context, a, b partydomain.SlotRef) error
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Store         *partydomain.Store    // Required
	Storage       localstore.Repository // Required
	Location      location.Location     // Required
	Catalog       Catalog               // Optional, no options are offered without it
	Clipboard     clipboard.Writer      // Optional, ShareParty only returns the link without it
	Bus           *events.Bus           // Optional
	UUIDGenerator uuid.Generator        // Optional, will use default if nil
	StorageKey    string                // Optional, defaults to DefaultStorageKey
	TokenParam    string                // Optional, defaults to codec.TokenParam
}

// service implements the Service interface
type service struct {
	mu sync.Mutex

	store         *partydomain.Store
	storage       localstore.Repository
	location      location.Location
	catalog       Catalog
	clipboard     clipboard.Writer
	bus           *events.Bus
	uuidGenerator uuid.Generator
	storageKey    string
	tokenParam    string

	pickTarget *partydomain.SlotRef
}

// NewService creates a new party service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Store == nil {
		panic("store is required")
	}
	if cfg.Storage == nil {
		panic("storage is required")
	}
	if cfg.Location == nil {
		panic("location is required")
	}

	svc := &service{
		store:         cfg.Store,
		storage:       cfg.Storage,
		location:      cfg.Location,
		catalog:       cfg.Catalog,
		clipboard:     cfg.Clipboard,
		bus:           cfg.Bus,
		uuidGenerator: cfg.UUIDGenerator,
		storageKey:    cfg.StorageKey,
		tokenParam:    cfg.TokenParam,
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.storageKey == "" {
		svc.storageKey = DefaultStorageKey
	}
	if svc.tokenParam == "" {
		svc.tokenParam = codec.TokenParam
	}

	return svc
}

// Start evaluates the three sources of truth in priority order. Decode and
// storage failures are logged and fall through to the next source.
func (s *service) Start(ctx context.Context) (Source, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var source Source
	event, err := s.mutate(ctx, events.EventTypePartyLoaded, func() error {
		source = s.resolveStartup(ctx)
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Printf("PartyService: Started from %s with %d filled slots", source, event.Snapshot.Filled())
	s.emit(event)
	return source, nil
}

func (s *service) resolveStartup(ctx context.Context) Source {
	if token := s.location.Param(s.tokenParam); token != "" {
		snap, err := codec.Decode(token)
		if err == nil {
			err = s.store.ApplySnapshot(snap)
		}
		if err == nil {
			return SourceToken
		}
		log.Printf("PartyService: Ignoring share token from location: %v", err)
	}

	value, err := s.storage.Get(ctx, s.storageKey)
	switch {
	case err == nil:
		snap, parseErr := codec.Unmarshal([]byte(value))
		if parseErr == nil {
			parseErr = s.store.ApplySnapshot(snap)
		}
		if parseErr == nil {
			return SourceStorage
		}
		log.Printf("PartyService: Ignoring saved party state: %v", parseErr)
	case dnderr.IsNotFound(err):
	default:
		log.Printf("PartyService: Local storage unavailable, starting without saved state: %v",
			dnderr.StorageUnavailable(err, "read party state"))
	}

	if err := s.store.ApplySnapshot(partydomain.EmptySnapshot(s.store.Layout())); err != nil {
		log.Printf("PartyService: Failed to reset to empty party: %v", err)
	}
	return SourceEmpty
}

// mutate runs change under the lock and, if it succeeds, persists the result
// before the lock is released. The returned event is emitted by the caller
// after unlocking so listeners may call back into the service.
func (s *service) mutate(ctx context.Context, eventType events.EventType, change func() error, refs ...partydomain.SlotRef) (*events.PartyEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := change(); err != nil {
		return nil, err
	}

	snap := s.store.ToSnapshot()
	data, err := codec.Marshal(snap)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to marshal party state")
	}
	token, err := codec.Encode(snap)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode share token")
	}

	if err := s.storage.Set(ctx, s.storageKey, string(data)); err != nil {
		log.Printf("PartyService: Failed to save party state: %v",
			dnderr.StorageUnavailable(err, "write party state"))
	}
	s.location.ReplaceParam(s.tokenParam, token)

	return &events.PartyEvent{
		BaseEvent: events.BaseEvent{
			ID:   s.uuidGenerator.New(),
			Type: eventType,
		},
		Slots:    refs,
		Snapshot: snap,
		Token:    token,
	}, nil
}

func (s *service) emit(event *events.PartyEvent) {
	if s.bus == nil || event == nil {
		return
	}
	if err := s.bus.Emit(event); err != nil {
		log.Printf("PartyService: Event %s listener error: %v", event.GetType(), err)
	}
}

// LoadCatalog awaits the catalog load. Failure is reported once and leaves
// the option pool empty.
func (s *service) LoadCatalog(ctx context.Context) error {
	if s.catalog == nil {
		return dnderr.CatalogUnavailable(nil, "no catalog configured")
	}

	if err := s.catalog.Load(ctx); err != nil {
		log.Printf("PartyService: Catalog unavailable, pickers will be empty: %v", err)
		if dnderr.IsCatalogUnavailable(err) {
			return err
		}
		return dnderr.CatalogUnavailable(err, "failed to load catalog")
	}
	return nil
}

func (s *service) Snapshot() partydomain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.ToSnapshot()
}

func (s *service) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return codec.Encode(s.store.ToSnapshot())
}

func (s *service) Fill(ctx context.Context, ref partydomain.SlotRef, item partydomain.Item) error {
	event, err := s.mutate(ctx, events.EventTypeSlotFilled, func() error {
		return s.store.Fill(ref, item)
	}, ref)
	if err != nil {
		return err
	}

	s.emit(event)
	return nil
}

func (s *service) Clear(ctx context.Context, ref partydomain.SlotRef) error {
	event, err := s.mutate(ctx, events.EventTypeSlotCleared, func() error {
		return s.store.Clear(ref)
	}, ref)
	if err != nil {
		return err
	}

	s.emit(event)
	return nil
}

func (s *service) Swap(ctx context.Context, a, b partydomain.SlotRef) error {
	event, err := s.mutate(ctx, events.EventTypeSlotsSwapped, func() error {
		return s.store.Swap(a, b)
	}, a, b)
	if err != nil {
		return err
	}

	s.emit(event)
	return nil
}

func (s *service) OnSlotsSwapped(ctx context.Context, a, b partydomain.SlotRef) error {
	if a == b {
		return nil
	}
	return s.Swap(ctx, a, b)
}

func (s *service) Reset(ctx context.Context) error {
	event, err := s.mutate(ctx, events.EventTypePartyReset, func() error {
		s.store.Reset()
		s.pickTarget = nil
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("PartyService: Reset all slots")
	s.emit(event)
	return nil
}

func (s *service) SetTheme(ctx context.Context, theme partydomain.Theme) error {
	event, err := s.mutate(ctx, events.EventTypeThemeChanged, func() error {
		return s.store.SetTheme(theme)
	})
	if err != nil {
		return err
	}

	s.emit(event)
	return nil
}

func (s *service) ToggleTheme(ctx context.Context) (partydomain.Theme, error) {
	var theme partydomain.Theme
	event, err := s.mutate(ctx, events.EventTypeThemeChanged, func() error {
		theme = s.store.Theme().Toggle()
		return s.store.SetTheme(theme)
	})
	if err != nil {
		return "", err
	}

	s.emit(event)
	return theme, nil
}

// Import applies a shared party. Malformed input leaves the current party untouched.
func (s *service) Import(ctx context.Context, raw string) error {
	token, err := codec.ExtractToken(raw)
	if err != nil {
		return err
	}
	snap, err := codec.Decode(token)
	if err != nil {
		return err
	}

	event, err := s.mutate(ctx, events.EventTypePartyImported, func() error {
		if err := s.store.ApplySnapshot(snap); err != nil {
			return dnderr.WrapWithCode(err, dnderr.CodeMalformedToken, "imported party does not fit")
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("PartyService: Imported party with %d filled slots", snap.Filled())
	s.emit(event)
	return nil
}

func (s *service) ShareLink() (string, error) {
	token, err := s.Token()
	if err != nil {
		return "", err
	}

	return s.location.WithParam(s.tokenParam, token), nil
}

func (s *service) ShareParty(ctx context.Context) (string, error) {
	link, err := s.ShareLink()
	if err != nil {
		return "", err
	}
	if s.clipboard == nil {
		return link, nil
	}

	if err := s.clipboard.Write(ctx, link); err != nil {
		return link, dnderr.Wrap(err, "failed to copy share link")
	}
	log.Printf("PartyService: Copied share link (%d chars)", len(link))
	return link, nil
}

func (s *service) Options(category partydomain.Category) []catalog.Option {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.options(category)
}

func (s *service) options(category partydomain.Category) []catalog.Option {
	if s.catalog == nil {
		return []catalog.Option{}
	}

	items := s.catalog.Items(category)
	options := make([]catalog.Option, len(items))
	for i, item := range items {
		options[i] = catalog.Option{
			Item:  item,
			InUse: s.store.InUse(item.ImageRef),
		}
	}
	return options
}

func (s *service) OnSlotActivated(ref partydomain.SlotRef) ([]catalog.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Slot(ref); err != nil {
		return nil, err
	}

	s.pickTarget = &ref
	return s.options(ref.Category), nil
}

func (s *service) SelectOption(ctx context.Context, name string) error {
	var ref partydomain.SlotRef
	event, err := s.mutate(ctx, events.EventTypeSlotFilled, func() error {
		if s.pickTarget == nil {
			return dnderr.InvalidArgument("no slot is waiting for a pick")
		}
		if s.catalog == nil {
			return dnderr.CatalogUnavailable(nil, "no catalog configured")
		}

		ref = *s.pickTarget
		item, err := s.catalog.Lookup(ref.Category, name)
		if err != nil {
			return err
		}
		if err := s.store.Fill(ref, item); err != nil {
			return err
		}
		s.pickTarget = nil
		return nil
	})
	if err != nil {
		return err
	}

	event.Slots = []partydomain.SlotRef{ref}
	s.emit(event)
	return nil
}

func (s *service) CancelPick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pickTarget = nil
}
