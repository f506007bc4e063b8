// wmsctl is a small operator CLI for the Smart WMS backend. It drives the
// gateway client end to end: dashboard aggregation, order status updates with
// verb fallback, cancellation, and bearer credential management.
//
// Usage:
//
//	wmsctl dashboard
//	wmsctl items
//	wmsctl inventory [zone]
//	wmsctl order-status <orderId-lineIndex> <status>
//	wmsctl order-cancel <orderId-lineIndex>
//	wmsctl login <token>
//	wmsctl logout
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jinacker/smart-wms-gateway/internal/config"
	"github.com/jinacker/smart-wms-gateway/internal/gateway"
	"github.com/jinacker/smart-wms-gateway/internal/observability"
	"github.com/jinacker/smart-wms-gateway/internal/repo"
	"github.com/jinacker/smart-wms-gateway/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)
	log.Logger = sysutil.NewLogger(cfg.LogPretty)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() { _ = shutdownOTel(context.Background()) }()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	if err := run(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, command string, args []string) error {
	// Credential commands manage the store directly, without a client.
	switch command {
	case "login":
		if len(args) != 1 {
			return fmt.Errorf("usage: wmsctl login <token>")
		}
		return withCredentialDB(cfg, func(store *repo.CredentialStore) error {
			return repo.SaveBearerToken(ctx, store.DB, args[0])
		})
	case "logout":
		return withCredentialDB(cfg, func(store *repo.CredentialStore) error {
			return repo.DeleteBearerToken(ctx, store.DB)
		})
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	switch command {
	case "dashboard":
		snap, err := client.Dashboard.Snapshot(ctx)
		if err != nil {
			return err
		}
		log.Info().Int64("totalLoadTime_ms", snap.TotalLoadTime).Msg("dashboard loaded")
		return printJSON(snap)

	case "items":
		items, err := client.Items.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(items)

	case "inventory":
		zone := ""
		if len(args) > 0 {
			zone = args[0]
		}
		balances, err := client.Inventory.List(ctx, zone)
		if err != nil {
			return err
		}
		return printJSON(balances)

	case "order-status":
		if len(args) != 2 {
			return fmt.Errorf("usage: wmsctl order-status <orderId-lineIndex> <status>")
		}
		order, err := client.Orders.UpdateStatus(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(order)

	case "order-cancel":
		if len(args) != 1 {
			return fmt.Errorf("usage: wmsctl order-cancel <orderId-lineIndex>")
		}
		return client.Orders.Cancel(ctx, args[0])

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// newClient assembles the gateway client per the configured security model.
func newClient(cfg config.Config) (*gateway.Client, error) {
	opts := []gateway.Option{
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		gateway.WithLogger(log.Logger),
	}
	if cfg.RateRPS > 0 {
		opts = append(opts, gateway.WithRateLimit(cfg.RateRPS, cfg.RateBurst))
	}
	if cfg.SecurityMode == config.ModeBearer {
		db, err := repo.OpenSQLite(cfg.CredentialDB)
		if err != nil {
			return nil, fmt.Errorf("open credential store: %w", err)
		}
		if err := repo.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate credential store: %w", err)
		}
		opts = append(opts, gateway.WithBearerAuth(&repo.CredentialStore{DB: db}))
	}
	return gateway.New(cfg.BaseURL, opts...), nil
}

// withCredentialDB opens the store, runs fn, and logs the outcome.
func withCredentialDB(cfg config.Config, fn func(*repo.CredentialStore) error) error {
	db, err := repo.OpenSQLite(cfg.CredentialDB)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate credential store: %w", err)
	}
	if err := fn(&repo.CredentialStore{DB: db}); err != nil {
		return err
	}
	log.Info().Str("db", cfg.CredentialDB).Msg("credential store updated")
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info().Str("addr", addr).Msg("metrics listener up")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics listener stopped")
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: wmsctl <command> [args]

commands:
  dashboard                              fetch the aggregate dashboard view
  items                                  list the item catalog
  inventory [zone]                       list stock balances
  order-status <orderId-lineIndex> <st>  update an order's status
  order-cancel <orderId-lineIndex>       cancel an order
  login <token>                          persist a bearer token
  logout                                 delete the persisted bearer token`)
}
