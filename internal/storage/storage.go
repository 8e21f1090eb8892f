package storage

import "database/sql"

var (
	Trade      *TradeStorage
	Prediction *PredictionStorage
)

func Init(client *sql.DB) {
	Trade = NewTradeStorage(client)
	Prediction = NewPredictionStorage(client)
}
