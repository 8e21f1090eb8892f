package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iqbalbaharum/predictr-client/internal/adapter"
	"github.com/iqbalbaharum/predictr-client/internal/market"
	"github.com/iqbalbaharum/predictr-client/internal/storage"
	"github.com/iqbalbaharum/predictr-client/internal/utils"
)

type marketHandler struct {
	service *market.Service
}

func NewMarketHandler(service *market.Service) *marketHandler {
	return &marketHandler{service: service}
}

func (h *marketHandler) List(w http.ResponseWriter, r *http.Request) {
	predictions, err := storage.Prediction.GetAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.Encode(w, r, http.StatusOK, predictions)
}

// Latest serves the cached snapshot when available and falls back to a live
// node read.
func (h *marketHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if client, err := adapter.GetRedisClient(); err == nil {
		if snapshot, err := storage.GetLatestSnapshot(client); err == nil && snapshot != nil {
			utils.Encode(w, r, http.StatusOK, snapshot)
			return
		}
	}

	prediction, err := h.service.LatestPrediction(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if prediction == nil {
		http.Error(w, "no markets exist", http.StatusNotFound)
		return
	}

	utils.Encode(w, r, http.StatusOK, prediction)
}

type createMarketRequest struct {
	EventID         string `json:"event_id"`
	ExpiryTimestamp uint32 `json:"expiry_timestamp"`
	NumOutcomes     uint8  `json:"num_outcomes"`
}

func (h *marketHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Decode[createMarketRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.EventID == "" || req.NumOutcomes == 0 {
		http.Error(w, "event_id and num_outcomes are required", http.StatusBadRequest)
		return
	}

	txid, err := h.service.CreateMarket(r.Context(), req.EventID, req.ExpiryTimestamp, req.NumOutcomes)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	utils.Encode(w, r, http.StatusOK, tradeResponse{TxID: txid})
}

func (h *marketHandler) Get(w http.ResponseWriter, r *http.Request) {
	uniqueId := chi.URLParam(r, "uniqueId")

	prediction, err := storage.Prediction.GetByUniqueID(uniqueId)
	if err != nil {
		if errors.Is(err, storage.ErrPredictionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.Encode(w, r, http.StatusOK, prediction)
}
