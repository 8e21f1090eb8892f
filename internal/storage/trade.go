package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/iqbalbaharum/predictr-client/internal/types"
)

type TradeStorage struct {
	client *sql.DB
}

func NewTradeStorage(db *sql.DB) *TradeStorage {
	return &TradeStorage{client: db}
}

func (s *TradeStorage) SetTrade(trade *types.Trade) error {
	query := `
			INSERT INTO trades (tx_id, event_id, action, outcome_id, amount, signer, timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`

	_, err := s.client.Exec(
		query,
		trade.TxID,
		trade.EventID,
		trade.Action,
		trade.OutcomeID,
		trade.Amount,
		trade.Signer,
		trade.Timestamp,
	)

	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

func (s *TradeStorage) GetByTxID(txID string) (*types.Trade, error) {
	query := `
			SELECT tx_id, event_id, action, outcome_id, amount, signer, timestamp
			FROM trades WHERE tx_id = ?
		`

	var trade types.Trade
	err := s.client.QueryRow(query, txID).Scan(
		&trade.TxID,
		&trade.EventID,
		&trade.Action,
		&trade.OutcomeID,
		&trade.Amount,
		&trade.Signer,
		&trade.Timestamp,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrExecuteQuery, err)
	}

	return &trade, nil
}

func (s *TradeStorage) GetRecent(limit int) ([]types.Trade, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
			SELECT tx_id, event_id, action, outcome_id, amount, signer, timestamp
			FROM trades ORDER BY timestamp DESC LIMIT ?
		`

	rows, err := s.client.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrExecuteQuery, err)
	}
	defer rows.Close()

	var trades []types.Trade
	for rows.Next() {
		var trade types.Trade
		if err := rows.Scan(
			&trade.TxID,
			&trade.EventID,
			&trade.Action,
			&trade.OutcomeID,
			&trade.Amount,
			&trade.Signer,
			&trade.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanData, err)
		}
		trades = append(trades, trade)
	}

	return trades, rows.Err()
}

func (s *TradeStorage) DeleteAll() error {
	if _, err := s.client.Exec(`DELETE FROM trades`); err != nil {
		return fmt.Errorf("%s: %w", ErrExecuteStatement, err)
	}
	return nil
}
