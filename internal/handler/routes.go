package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iqbalbaharum/predictr-client/internal/market"
)

const ErrTimeout = "request timed out"

func CreateRoutes(service *market.Service, hub *Hub) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	var (
		marketHandler = NewMarketHandler(service)
		tokenHandler  = NewTokenHandler(service)
		tradeHandler  = NewTradeHandler(service)
	)

	r.Route("/market", func(r chi.Router) {
		r.Get("/", marketHandler.List)
		r.Get("/latest", marketHandler.Latest)
		r.Get("/{uniqueId}", marketHandler.Get)
		r.Post("/", marketHandler.Create)
	})

	r.Route("/token", func(r chi.Router) {
		r.Get("/", tokenHandler.Get)
		r.Get("/balance/{pubkey}", tokenHandler.Balance)
		r.Post("/", tokenHandler.Create)
	})

	r.Route("/trade", func(r chi.Router) {
		r.Get("/", tradeHandler.Get)
		r.Post("/buy", tradeHandler.Buy)
		r.Post("/sell", tradeHandler.Sell)
		r.Post("/mint", tradeHandler.Mint)
		r.Delete("/", tradeHandler.DeleteAll)
	})

	r.Get("/ws", hub.Serve)

	return r
}
