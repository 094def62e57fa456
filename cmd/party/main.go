package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/party-share/internal/catalog"
	"github.com/KirkDiggler/party-share/internal/clipboard"
	"github.com/KirkDiggler/party-share/internal/config"
	"github.com/KirkDiggler/party-share/internal/events"
	"github.com/KirkDiggler/party-share/internal/location"
	"github.com/KirkDiggler/party-share/internal/repositories/localstore"
	"github.com/KirkDiggler/party-share/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	address := flag.String("url", "", "page address, may carry a shared party in its p parameter")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *address, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "party: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: party [-url ADDRESS] <command>

Commands:
  show                              print the party
  options <category>                list catalog items for character or remnant
  fill <category> <index> <name>    place a catalog item in a slot
  clear <category> <index>          empty a slot
  swap <category> <a> <b>           exchange two slots of one category
  reset                             empty every slot
  theme [light|dark]                set or toggle the theme
  share                             copy the share link
  import <token-or-link>            load a shared party

`)
	flag.PrintDefaults()
}

func run(ctx context.Context, cfg *config.Config, address string, args []string) error {
	if address == "" {
		address = cfg.Party.BaseURL
	}
	loc, err := location.Parse(address)
	if err != nil {
		return err
	}

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	writer, err := openClipboard(cfg)
	if err != nil {
		return err
	}

	provider, err := services.NewProvider(&services.ProviderConfig{
		Layout:         cfg.Layout(),
		Location:       loc,
		Storage:        storage,
		StorageKey:     cfg.Storage.Key,
		CatalogSources: catalogSources(cfg),
		Language:       cfg.Language(),
		Clipboard:      writer,
	})
	if err != nil {
		return err
	}

	provider.EventBus.SubscribeAll(newEventLogger(log.Default()))

	svc := provider.PartyService
	if _, err := svc.Start(ctx); err != nil {
		return err
	}
	if err := svc.LoadCatalog(ctx); err != nil {
		log.Printf("Continuing without catalog, options will be empty: %v", err)
	}

	if err := runCommand(ctx, svc, args, os.Stdout); err != nil {
		return err
	}
	if len(args) > 0 && args[0] == "share" {
		return nil
	}

	link, err := svc.ShareLink()
	if err != nil {
		return err
	}
	fmt.Println(link)
	return nil
}

// newEventLogger logs every party change with the slots it touched
func newEventLogger(logger *log.Logger) events.EventListener {
	return &events.ListenerFunc{
		Name:  "cli_event_logger",
		Order: 100,
		Callback: func(event events.Event) error {
			partyEvent, ok := event.(*events.PartyEvent)
			if !ok {
				logger.Printf("Party: %s", event.GetType())
				return nil
			}
			logger.Printf("Party: %s %v, %d slots filled", partyEvent.GetType(), partyEvent.Slots, partyEvent.Snapshot.Filled())
			return nil
		},
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (localstore.Repository, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.StorageSQLite:
		repo, err := localstore.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Printf("Failed to close SQLite store: %v", err)
			}
		}, nil

	case config.StorageRedis:
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to parse Redis URL: %v", err)
			log.Println("Falling back to in-memory storage")
			return localstore.NewInMemoryRepository(), noop, nil
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			log.Println("Falling back to in-memory storage")
			_ = client.Close()
			return localstore.NewInMemoryRepository(), noop, nil
		}

		log.Println("Using Redis for persistence")
		repo := localstore.NewRedisRepository(&localstore.RedisRepoConfig{
			Client: client,
			TTL:    cfg.Storage.TTL,
		})
		return repo, func() {
			if err := client.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}, nil
	}

	return localstore.NewInMemoryRepository(), noop, nil
}

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opts), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

func catalogSources(cfg *config.Config) []catalog.Source {
	var sources []catalog.Source
	for _, path := range cfg.Catalog.Files {
		sources = append(sources, &catalog.FileSource{Path: path})
	}
	if cfg.Catalog.URL != "" {
		sources = append(sources, catalog.NewHTTPSource(&catalog.HTTPSourceConfig{
			URL:     cfg.Catalog.URL,
			Timeout: cfg.Catalog.Timeout,
		}))
	}
	return sources
}

func openClipboard(cfg *config.Config) (clipboard.Writer, error) {
	if !cfg.Discord.Enabled() {
		return &clipboard.Stream{W: os.Stdout}, nil
	}

	return clipboard.NewDiscordWebhook(&clipboard.DiscordWebhookConfig{
		WebhookID:    cfg.Discord.WebhookID,
		WebhookToken: cfg.Discord.WebhookToken,
		Username:     "Party Builder",
	})
}
