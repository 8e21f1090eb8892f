package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iqbalbaharum/predictr-client/internal/arch"
	"github.com/iqbalbaharum/predictr-client/internal/market"
	"github.com/iqbalbaharum/predictr-client/internal/utils"
)

type tokenHandler struct {
	service *market.Service
}

func NewTokenHandler(service *market.Service) *tokenHandler {
	return &tokenHandler{service: service}
}

func (h *tokenHandler) Get(w http.ResponseWriter, r *http.Request) {
	token, err := h.service.FetchTokenData(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	utils.Encode(w, r, http.StatusOK, token)
}

type createTokenRequest struct {
	Supply   uint64 `json:"supply"`
	Ticker   string `json:"ticker"`
	Decimals uint8  `json:"decimals"`
}

// Create initializes the platform token. Omitted fields fall back to the
// PUSD defaults.
func (h *tokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Decode[createTokenRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Supply == 0 {
		req.Supply = market.DefaultTokenSupply
	}
	if req.Ticker == "" {
		req.Ticker = market.DefaultTokenTicker
	}
	if req.Decimals == 0 {
		req.Decimals = market.DefaultTokenDecimals
	}

	txid, err := h.service.CreateToken(r.Context(), req.Supply, req.Ticker, req.Decimals)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	utils.Encode(w, r, http.StatusOK, tradeResponse{TxID: txid})
}

type balanceResponse struct {
	Pubkey  string `json:"pubkey"`
	Balance uint64 `json:"balance"`
}

func (h *tokenHandler) Balance(w http.ResponseWriter, r *http.Request) {
	pubkey, err := arch.PubkeyFromHex(chi.URLParam(r, "pubkey"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	balance, err := h.service.Balance(r.Context(), pubkey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	utils.Encode(w, r, http.StatusOK, balanceResponse{
		Pubkey:  pubkey.String(),
		Balance: balance,
	})
}
