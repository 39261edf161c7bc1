package handler

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/rocket-cart/internal/adapter/rpc"
	"github.com/rl1809/rocket-cart/internal/core/service"
)

type GRPCHandler struct {
	stockService *service.StockService
	log          logrus.FieldLogger
}

var _ rpc.StockServiceServer = (*GRPCHandler)(nil)

func NewGRPCHandler(stockService *service.StockService, log logrus.FieldLogger) *GRPCHandler {
	return &GRPCHandler{stockService: stockService, log: log}
}

func (h *GRPCHandler) GetStock(ctx context.Context, req *rpc.ProductRequest) (*rpc.StockReply, error) {
	stock, err := h.stockService.GetStock(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(req.ID, err)
	}
	return &rpc.StockReply{ID: stock.ID, Amount: stock.Amount}, nil
}

func (h *GRPCHandler) GetProduct(ctx context.Context, req *rpc.ProductRequest) (*rpc.ProductReply, error) {
	product, err := h.stockService.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(req.ID, err)
	}
	return &rpc.ProductReply{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageURL,
	}, nil
}

func (h *GRPCHandler) toStatus(id int, err error) error {
	if errors.Is(err, service.ErrProductNotFound) {
		return status.Errorf(codes.NotFound, "product %d not found", id)
	}
	h.log.WithError(err).WithField("product_id", id).Error("stock request failed")
	return status.Error(codes.Internal, "internal error")
}
