package rpc

import (
	"context"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const (
	ServiceName = "rocketcart.stock.v1.StockService"

	GetStockMethod   = "/" + ServiceName + "/GetStock"
	GetProductMethod = "/" + ServiceName + "/GetProduct"
)

type ProductRequest struct {
	ID int `json:"id"`
}

type StockReply struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

type ProductReply struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
}

type StockServiceServer interface {
	GetStock(ctx context.Context, req *ProductRequest) (*StockReply, error)
	GetProduct(ctx context.Context, req *ProductRequest) (*ProductReply, error)
}

func RegisterStockServiceServer(s grpc.ServiceRegistrar, srv StockServiceServer) {
	s.RegisterService(&StockServiceDesc, srv)
}

var StockServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStock", Handler: getStockHandler},
		{MethodName: "GetProduct", Handler: getProductHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func getStockHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StockServiceServer).GetStock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetStockMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StockServiceServer).GetStock(ctx, req.(*ProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StockServiceServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetProductMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StockServiceServer).GetProduct(ctx, req.(*ProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}

type StockServiceClient interface {
	GetStock(ctx context.Context, req *ProductRequest, opts ...grpc.CallOption) (*StockReply, error)
	GetProduct(ctx context.Context, req *ProductRequest, opts ...grpc.CallOption) (*ProductReply, error)
}

type stockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStockServiceClient returns a client that always sends with the JSON codec.
func NewStockServiceClient(cc grpc.ClientConnInterface) StockServiceClient {
	return &stockServiceClient{cc: cc}
}

func (c *stockServiceClient) GetStock(ctx context.Context, req *ProductRequest, opts ...grpc.CallOption) (*StockReply, error) {
	out := new(StockReply)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, GetStockMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stockServiceClient) GetProduct(ctx context.Context, req *ProductRequest, opts ...grpc.CallOption) (*ProductReply, error) {
	out := new(ProductReply)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, GetProductMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
