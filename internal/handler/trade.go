package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iqbalbaharum/predictr-client/internal/market"
	"github.com/iqbalbaharum/predictr-client/internal/storage"
	"github.com/iqbalbaharum/predictr-client/internal/tx"
	"github.com/iqbalbaharum/predictr-client/internal/types"
	"github.com/iqbalbaharum/predictr-client/internal/utils"
	"github.com/iqbalbaharum/predictr-client/internal/wallet"
)

type tradeHandler struct {
	service *market.Service
}

func NewTradeHandler(service *market.Service) *tradeHandler {
	return &tradeHandler{service: service}
}

type tradeRequest struct {
	EventID   string `json:"event_id"`
	OutcomeID uint8  `json:"outcome_id"`
	Amount    uint64 `json:"amount"`
}

type mintRequest struct {
	Amount uint64 `json:"amount"`
}

type tradeResponse struct {
	TxID string `json:"tx_id"`
}

func (h *tradeHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	trades, err := storage.Trade.GetRecent(limit)
	if err != nil {
		select {
		case <-r.Context().Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	utils.Encode(w, r, http.StatusOK, trades)
}

func (h *tradeHandler) Buy(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "buy")
}

func (h *tradeHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "sell")
}

func (h *tradeHandler) submit(w http.ResponseWriter, r *http.Request, action string) {
	req, err := utils.Decode[tradeRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.EventID == "" || req.Amount == 0 {
		http.Error(w, "event_id and amount are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	var txid string
	if action == "buy" {
		txid, err = h.service.BuyOutcome(ctx, req.EventID, req.OutcomeID, req.Amount)
	} else {
		txid, err = h.service.SellOutcome(ctx, req.EventID, req.OutcomeID, req.Amount)
	}

	if err != nil {
		writeSubmitError(w, err)
		return
	}

	h.record(ctx, txid, req.EventID, action, req.OutcomeID, req.Amount)

	utils.Encode(w, r, http.StatusOK, tradeResponse{TxID: txid})
}

func (h *tradeHandler) Mint(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Decode[mintRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount == 0 {
		http.Error(w, "amount is required", http.StatusBadRequest)
		return
	}

	txid, err := h.service.MintTokens(r.Context(), req.Amount)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	h.record(r.Context(), txid, "", "mint", 0, req.Amount)

	utils.Encode(w, r, http.StatusOK, tradeResponse{TxID: txid})
}

func (h *tradeHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := storage.Trade.DeleteAll(); err != nil {
		select {
		case <-r.Context().Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *tradeHandler) record(ctx context.Context, txid, eventID, action string, outcomeID uint8, amount uint64) {
	signer := ""
	if pk, err := h.service.SignerPubkey(ctx); err == nil {
		signer = pk.String()
	}

	_ = storage.Trade.SetTrade(&types.Trade{
		TxID:      txid,
		EventID:   eventID,
		Action:    action,
		OutcomeID: outcomeID,
		Amount:    amount,
		Signer:    signer,
		Timestamp: time.Now().Unix(),
	})
}

func writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallet.ErrSigningCancelled):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, tx.ErrSubmissionRejected):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, tx.ErrSubmissionFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
