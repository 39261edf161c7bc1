package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

const requestIDHeader = "X-Request-ID"

// StatusError is returned for any non-2xx answer from the stock service.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Code)
}

// HTTPStockClient reads stock levels and product metadata from the stock
// service's REST API. Every call goes to the network.
type HTTPStockClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPStockClient(baseURL string, httpClient *http.Client) *HTTPStockClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPStockClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *HTTPStockClient) GetStock(ctx context.Context, productID int) (domain.Stock, error) {
	var stock domain.Stock
	if err := c.get(ctx, fmt.Sprintf("%s/stock/%d", c.baseURL, productID), &stock); err != nil {
		return domain.Stock{}, err
	}
	return stock, nil
}

func (c *HTTPStockClient) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, productID), &product); err != nil {
		return domain.Product{}, err
	}
	product.Amount = 0
	return product, nil
}

func (c *HTTPStockClient) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: http.MethodGet, URL: url, Code: resp.StatusCode}
	}

	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "decode %s", url)
}
