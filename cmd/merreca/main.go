package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/minhamerreca/backend/internal/config"
	"github.com/minhamerreca/backend/internal/ledger"
	"github.com/minhamerreca/backend/internal/money"
	"github.com/minhamerreca/backend/internal/service"
	"github.com/minhamerreca/backend/internal/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st store.Store
	switch cfg.Backend {
	case config.BackendFirestore:
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		client, err := firestore.NewClient(ctx, cfg.GoogleCloudProject, opts...)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer client.Close()
		st = store.NewFirestoreStore(client, cfg.EntryCollection, cfg.CategoryCollection)
		log.Printf("Using Firestore store (project %s, collection %s)", cfg.GoogleCloudProject, cfg.EntryCollection)
	default:
		st = store.NewMemoryStore()
		log.Println("Using in-memory store for local development")
	}

	svc := service.NewLedgerService(st)
	if err := svc.LoadCategories(ctx); err != nil {
		log.Fatalf("Failed to load categories: %v", err)
	}

	formatter := money.NewFormatter(cfg.Locale, cfg.CurrencySymbol)
	dash := newDashboard(svc.Registry(), formatter)

	snapshots := make(chan []*ledger.Entry, 1)
	unsubscribe, err := svc.Watch(ctx, func(entries []*ledger.Entry) {
		// Coalesce: only the newest snapshot matters, older ones are
		// superseded wholesale.
		select {
		case snapshots <- entries:
		default:
			select {
			case <-snapshots:
			default:
			}
			snapshots <- entries
		}
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to entry snapshots: %v", err)
	}
	defer unsubscribe()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		now := time.Now()
		for {
			select {
			case <-ctx.Done():
				return nil
			case entries := <-snapshots:
				dash.render(entries, now.Month(), now.Year())
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Watch loop failed: %v", err)
	}
	log.Println("Shutting down")
}
