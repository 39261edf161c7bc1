// Command cartctl is a terminal front-end for the cart. Each invocation loads
// the stored cart, applies at most one change and prints the result.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"github.com/rl1809/rocket-cart/internal/adapter/client"
	"github.com/rl1809/rocket-cart/internal/adapter/handler"
	"github.com/rl1809/rocket-cart/internal/adapter/messaging"
	"github.com/rl1809/rocket-cart/internal/adapter/notifier"
	"github.com/rl1809/rocket-cart/internal/adapter/storage"
	"github.com/rl1809/rocket-cart/internal/config"
	"github.com/rl1809/rocket-cart/internal/core/service"
	"github.com/rl1809/rocket-cart/internal/logging"
	"github.com/rl1809/rocket-cart/internal/port"
	"github.com/rl1809/rocket-cart/internal/telemetry"
)

const usageText = `usage: cartctl [flags] <command>

commands:
  list                   show the cart
  add <id>               add one unit of a product
  remove <id>            remove a product from the cart
  update <id> <amount>   set the quantity of a product in the cart

flags:
`

func main() {
	fs := pflag.NewFlagSet("cartctl", pflag.ContinueOnError)
	config.RegisterCartClientFlags(fs)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cmd, err := parseCommand(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadCartClient(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code, err := run(ctx, cfg, cmd, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cartctl: %v\n", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, cfg config.CartClient, cmd command, stdout, stderr io.Writer) (int, error) {
	log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: stderr})
	if err != nil {
		return 2, err
	}

	shutdownTracing, err := telemetry.InitTracerProvider(ctx, "cartctl", cfg.OTLPEndpoint)
	if err != nil {
		return 1, err
	}
	defer shutdownTracing(context.Background())

	lookup, closeLookup, err := newLookup(cfg.Lookup)
	if err != nil {
		return 1, err
	}
	defer closeLookup()

	cartStorage, closeStorage := newStorage(cfg.Storage)
	defer closeStorage()

	opts := []service.Option{service.WithLogger(log)}
	if cfg.SessionID != "" {
		opts = append(opts, service.WithSessionID(cfg.SessionID))
	}

	cart, err := service.NewCartService(ctx, lookup, cartStorage, opts...)
	if err != nil {
		return 1, err
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher := messaging.NewKafkaCartPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cart.SessionID(), log)
		defer publisher.Close()
		unsubscribe := cart.Subscribe(publisher.OnCartChanged)
		defer unsubscribe()
	}

	failures := &failureNotifier{next: notifier.NewWriterNotifier(stderr)}
	presenter := handler.NewCartPresenter(cart, failures, log)

	opCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	switch cmd.name {
	case cmdAdd:
		presenter.AddProduct(opCtx, cmd.productID)
	case cmdRemove:
		presenter.RemoveProduct(opCtx, cmd.productID)
	case cmdUpdate:
		presenter.UpdateProductAmount(opCtx, cmd.productID, cmd.amount)
	}

	if err := renderCart(stdout, cart.Cart()); err != nil {
		return 1, err
	}
	if failures.failed {
		return 1, nil
	}
	return 0, nil
}

func newLookup(cfg config.Lookup) (port.StockLookup, func(), error) {
	if cfg.Transport == config.TransportGRPC {
		c, err := client.DialGRPCStockClient(cfg.GRPCTarget)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { c.Close() }, nil
	}
	return client.NewHTTPStockClient(cfg.HTTPURL, http.DefaultClient), func() {}, nil
}

func newStorage(cfg config.Storage) (port.CartStorage, func()) {
	if cfg.Backend == config.BackendRedis {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return storage.NewRedisAdapter(rdb, cfg.Key, 0), func() { rdb.Close() }
	}
	return storage.NewFileAdapter(cfg.FilePath), func() {}
}

// failureNotifier remembers whether any message was shown, for the exit code.
type failureNotifier struct {
	next   port.Notifier
	failed bool
}

func (n *failureNotifier) Error(message string) {
	n.failed = true
	n.next.Error(message)
}

