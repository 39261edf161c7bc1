// Command stress_test fires concurrent AddProduct calls for one product at a
// single cart and reports how many increments were lost. The cart store does
// not serialize overlapping mutations, so on a fast stock service some usually
// are.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/rocket-cart/internal/adapter/client"
	"github.com/rl1809/rocket-cart/internal/adapter/storage"
	"github.com/rl1809/rocket-cart/internal/core/service"
)

const (
	redisAddr     = "localhost:6379"
	stockURL      = "http://localhost:8080"
	cartKey       = "stress:cart"
	productID     = 1
	totalRequests = 50
)

func main() {
	ctx := context.Background()

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	// Clear previous test data
	rdb.Del(ctx, cartKey)

	lookup := client.NewHTTPStockClient(stockURL, nil)
	stock, err := lookup.GetStock(ctx, productID)
	if err != nil {
		log.Fatalf("failed to read stock: %v", err)
	}

	quiet := logrus.New()
	quiet.SetOutput(os.Stderr)
	quiet.SetLevel(logrus.ErrorLevel)

	cart, err := service.NewCartService(ctx, lookup, storage.NewRedisAdapter(rdb, cartKey, 0), service.WithLogger(quiet))
	if err != nil {
		log.Fatalf("failed to load cart: %v", err)
	}

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32

	// Spawn concurrent requests
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := cart.AddProduct(ctx, productID); err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Results
	success := successCount.Load()
	fail := failCount.Load()
	final := cart.Cart().Amount(productID)

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Available Stock:  %d\n", stock.Amount)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Final Amount:     %d\n", final)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if final > stock.Amount {
		fmt.Printf("FAIL: cart holds %d, above stock %d\n", final, stock.Amount)
	} else {
		fmt.Println("PASS: cart never exceeds stock")
	}

	if lost := int(success) - final; lost > 0 {
		fmt.Printf("NOTE: %d increments lost to overlapping mutations\n", lost)
	}

	// Verify the snapshot matches memory
	stored, err := storage.NewRedisAdapter(rdb, cartKey, 0).LoadCart(ctx)
	if err != nil {
		log.Fatalf("failed to reload cart: %v", err)
	}
	if stored.Amount(productID) == final {
		fmt.Println("PASS: snapshot matches memory")
	} else {
		fmt.Printf("FAIL: snapshot holds %d, memory %d\n", stored.Amount(productID), final)
	}
}
