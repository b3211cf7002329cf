package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/internal/cartsync"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/notify"
	"github.com/angelmondragon/storefront/internal/session"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

const usage = `usage: storefront <command> [args]

commands:
  products                 list the catalog by category
  cart                     show the cart
  add <id> [qty]           add qty (default 1) units of a product
  remove <id>              remove a product line
  update <id> <qty>        set the exact quantity of a line
  clear                    empty the cart
  checkout -name -email -phone -address
                           place an order for the cart
  order <id>               show a placed order
  orders                   list this session's orders
  session                  print the session id
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) (err error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	store, closeStore, err := session.Open(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeStore())
	}()

	clientMetrics, flushMetrics := openMetrics(cfg.App.MetricsFile)
	defer func() {
		err = multierr.Append(err, flushMetrics())
	}()

	client, err := storefront.NewClient(storefront.Options{
		BaseURL:   cfg.Backend.BaseURL,
		Timeout:   cfg.Backend.Timeout,
		UserAgent: cfg.Backend.UserAgent,
		Logger:    logg,
		Metrics:   clientMetrics,
	})
	if err != nil {
		return err
	}

	cart, err := cartsync.NewSession(ctx, client, session.NewProvider(store, cfg.Session.Key, logg), cartsync.Options{
		GuardStale: cfg.Backend.GuardStale,
		Logger:     logg,
		Metrics:    clientMetrics,
	})
	if err != nil {
		return err
	}

	notifier, err := notify.New(notify.NewWriterSink(os.Stderr), logg)
	if err != nil {
		return err
	}

	a := &app{
		out:      os.Stdout,
		cart:     cart,
		catalog:  catalog.New(client, logg),
		orders:   client,
		notifier: notifier,
	}
	return a.run(ctx, args)
}

// openMetrics registers the client metrics on a private registry. The returned
// flush writes them to path, or does nothing when path is empty.
func openMetrics(path string) (*metrics.ClientMetrics, func() error) {
	reg := prometheus.NewRegistry()
	return metrics.NewClientMetrics(reg), func() error {
		return metrics.WriteTextfile(path, reg)
	}
}
