package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/paytoken/internal/logging"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
	"github.com/gorilla/mux"
)

const maxRequestBody = 1 << 16

type paymentHandler struct {
	payments Payer
	logger   logging.Logger
}

// ServeHTTP handles POST /. The decoded request holds the PAN and must not
// be logged or echoed back.
func (h *paymentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &models.PaymentRequest{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(req); err != nil {
		h.logger.Warn(ctx, "Unable to parse request", "request_id", RequestID(ctx))
		writeError(w, http.StatusBadRequest, "unable to parse request")
		return
	}

	resp, err := h.payments.Pay(ctx, req)
	if err != nil {
		status, msg := statusFor(err)
		h.logger.Error(ctx, "Payment failed", "request_id", RequestID(ctx), "status", status, "error", err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type healthHandler struct {
	health HealthReporter
}

// ServeHTTP always answers 200; dependency state is in the body.
func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.health.Health(r.Context()))
}

type ordersHandler struct {
	orders OrderReader
	logger logging.Logger
}

func (h *ordersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.orders.List(ctx)
	if err != nil {
		status, msg := statusFor(err)
		h.logger.Error(ctx, "Unable to list orders", "request_id", RequestID(ctx), "error", err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *ordersHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.Get(ctx, id)
	if err != nil {
		status, msg := statusFor(err)
		if status != http.StatusNotFound {
			h.logger.Error(ctx, "Unable to get order", "request_id", RequestID(ctx), "id", id, "error", err)
		}
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, o)
}
