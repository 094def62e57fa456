package services

import (
	"golang.org/x/text/language"

	"github.com/KirkDiggler/party-share/internal/catalog"
	"github.com/KirkDiggler/party-share/internal/clipboard"
	partydomain "github.com/KirkDiggler/party-share/internal/domain/party"
	"github.com/KirkDiggler/party-share/internal/events"
	"github.com/KirkDiggler/party-share/internal/location"
	"github.com/KirkDiggler/party-share/internal/repositories/localstore"
	partyService "github.com/KirkDiggler/party-share/internal/services/party"
)

// Provider holds all service instances
type Provider struct {
	PartyService partyService.Service
	Catalog      *catalog.Catalog
	EventBus     *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Layout         partydomain.Layout
	Location       location.Location
	Storage        localstore.Repository
	StorageKey     string
	CatalogSources []catalog.Source
	Language       language.Tag
	Clipboard      clipboard.Writer
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	layout := cfg.Layout
	if layout == (partydomain.Layout{}) {
		layout = partydomain.DefaultLayout
	}
	store, err := partydomain.NewStore(layout)
	if err != nil {
		return nil, err
	}

	// Use in-memory storage if none provided
	storage := cfg.Storage
	if storage == nil {
		storage = localstore.NewInMemoryRepository()
	}

	cat := catalog.New(&catalog.Config{
		Sources:  cfg.CatalogSources,
		Language: cfg.Language,
	})
	bus := events.NewBus()

	svc := partyService.NewService(&partyService.ServiceConfig{
		Store:      store,
		Storage:    storage,
		Location:   cfg.Location,
		Catalog:    cat,
		Clipboard:  cfg.Clipboard,
		Bus:        bus,
		StorageKey: cfg.StorageKey,
	})

	return &Provider{
		PartyService: svc,
		Catalog:      cat,
		EventBus:     bus,
	}, nil
}
