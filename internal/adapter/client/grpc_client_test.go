package client

import (
	"context"
	"net"
	"testing"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/rocket-cart/internal/adapter/rpc"
)

type stubStockServer struct{}

func (stubStockServer) GetStock(ctx context.Context, req *rpc.ProductRequest) (*rpc.StockReply, error) {
	if req.ID != 1 {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return &rpc.StockReply{ID: 1, Amount: 4}, nil
}

func (stubStockServer) GetProduct(ctx context.Context, req *rpc.ProductRequest) (*rpc.ProductReply, error) {
	if req.ID != 1 {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return &rpc.ProductReply{ID: 1, Name: "Chinelo", Price: decimal.RequireFromString("29.9"), ImageURL: "https://img/c.jpg"}, nil
}

func dialStub(t *testing.T) *GRPCStockClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	rpc.RegisterStockServiceServer(srv, stubStockServer{})
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	c, err := DialGRPCStockClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGRPCStockClient(t *testing.T) {
	c := dialStub(t)
	ctx := context.Background()

	stock, err := c.GetStock(ctx, 1)
	if err != nil {
		t.Fatalf("GetStock failed: %v", err)
	}
	if stock.Amount != 4 {
		t.Errorf("expected amount 4, got %d", stock.Amount)
	}

	product, err := c.GetProduct(ctx, 1)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if product.Name != "Chinelo" || !product.Price.Equal(decimal.RequireFromString("29.9")) {
		t.Errorf("unexpected product %+v", product)
	}
}

func TestGRPCStockClient_NotFound(t *testing.T) {
	c := dialStub(t)

	_, err := c.GetStock(context.Background(), 7)
	if status.Code(err) != codes.NotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}
