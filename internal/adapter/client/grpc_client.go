package client

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rl1809/rocket-cart/internal/adapter/rpc"
	"github.com/rl1809/rocket-cart/internal/core/domain"
)

// GRPCStockClient reads from the stock service over gRPC with the JSON codec.
type GRPCStockClient struct {
	conn   *grpc.ClientConn
	client rpc.StockServiceClient
}

// DialGRPCStockClient connects to target without transport security. Extra
// dial options are appended after the defaults.
func DialGRPCStockClient(target string, opts ...grpc.DialOption) (*GRPCStockClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", target)
	}
	return &GRPCStockClient{conn: conn, client: rpc.NewStockServiceClient(conn)}, nil
}

func (c *GRPCStockClient) GetStock(ctx context.Context, productID int) (domain.Stock, error) {
	reply, err := c.client.GetStock(ctx, &rpc.ProductRequest{ID: productID})
	if err != nil {
		return domain.Stock{}, errors.Wrapf(err, "get stock %d", productID)
	}
	return domain.Stock{ID: reply.ID, Amount: reply.Amount}, nil
}

func (c *GRPCStockClient) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	reply, err := c.client.GetProduct(ctx, &rpc.ProductRequest{ID: productID})
	if err != nil {
		return domain.Product{}, errors.Wrapf(err, "get product %d", productID)
	}
	return domain.Product{
		ID:       reply.ID,
		Name:     reply.Name,
		Price:    reply.Price,
		ImageURL: reply.ImageURL,
	}, nil
}

func (c *GRPCStockClient) Close() error {
	return c.conn.Close()
}
