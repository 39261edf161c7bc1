package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/rocket-cart/internal/core/domain"
	"github.com/rl1809/rocket-cart/internal/core/service"
)

type HTTPHandler struct {
	stockService *service.StockService
	log          logrus.FieldLogger
}

type StockHTTPResponse struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

type ProductHTTPResponse struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	ImageURL string      `json:"imageUrl"`
}

type SetStockHTTPRequest struct {
	Amount *int `json:"amount"`
}

type ErrorHTTPResponse struct {
	Message string `json:"message"`
}

func NewHTTPHandler(stockService *service.StockService, log logrus.FieldLogger) *HTTPHandler {
	return &HTTPHandler{stockService: stockService, log: log}
}

// Router wires the stock API routes.
func (h *HTTPHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/stock/{id:[0-9]+}", h.GetStock).Methods(http.MethodGet)
	r.HandleFunc("/stock/{id:[0-9]+}", h.SetStock).Methods(http.MethodPut)
	r.HandleFunc("/products/{id:[0-9]+}", h.GetProduct).Methods(http.MethodGet)
	return r
}

func (h *HTTPHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	stock, err := h.stockService.GetStock(r.Context(), id)
	if err != nil {
		h.writeError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, toStockResponse(stock))
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.stockService.GetProduct(r.Context(), id)
	if err != nil {
		h.writeError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, ProductHTTPResponse{
		ID:       product.ID,
		Name:     product.Name,
		Price:    json.Number(product.Price.String()),
		ImageURL: product.ImageURL,
	})
}

func (h *HTTPHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req SetStockHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Message: "invalid request body"})
		return
	}
	if req.Amount == nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Message: "missing required fields"})
		return
	}

	stock, err := h.stockService.SetStock(r.Context(), id, *req.Amount)
	if err != nil {
		h.writeError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, toStockResponse(stock))
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, id int, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		status = http.StatusNotFound
		message = "product not found"
	case errors.Is(err, service.ErrInvalidStock):
		status = http.StatusBadRequest
		message = "stock amount must not be negative"
	default:
		h.log.WithError(err).WithField("product_id", id).Error("stock request failed")
	}

	writeJSON(w, status, ErrorHTTPResponse{Message: message})
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Message: "invalid product id"})
		return 0, false
	}
	return id, true
}

func toStockResponse(s domain.Stock) StockHTTPResponse {
	return StockHTTPResponse{ID: s.ID, Amount: s.Amount}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
