package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/iqbalbaharum/predictr-client/internal/types"
)

type PredictionStorage struct {
	client *sql.DB
}

func NewPredictionStorage(db *sql.DB) *PredictionStorage {
	return &PredictionStorage{client: db}
}

// Upsert writes the latest decoded state of one prediction. The on-chain
// account is the source of truth; rows here only index it for queries.
func (s *PredictionStorage) Upsert(p *types.PredictionRecord) error {
	query := `
			INSERT INTO predictions (unique_id, creator, expiry_timestamp, total_pool_amount, status, winning_outcome, num_outcomes)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				total_pool_amount = VALUES(total_pool_amount),
				status = VALUES(status),
				winning_outcome = VALUES(winning_outcome),
				num_outcomes = VALUES(num_outcomes)
		`

	var winner sql.NullInt16
	if p.WinningOutcome != nil {
		winner = sql.NullInt16{Int16: int16(*p.WinningOutcome), Valid: true}
	}

	_, err := s.client.Exec(
		query,
		p.UniqueID,
		p.Creator,
		p.ExpiryTimestamp,
		p.TotalPoolAmount,
		p.Status,
		winner,
		p.NumOutcomes,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}

	return nil
}

func (s *PredictionStorage) GetByUniqueID(uniqueID string) (*types.PredictionRecord, error) {
	query := `
			SELECT unique_id, creator, expiry_timestamp, total_pool_amount, status, winning_outcome, num_outcomes
			FROM predictions WHERE unique_id = ?
		`

	var p types.PredictionRecord
	var winner sql.NullInt16

	err := s.client.QueryRow(query, uniqueID).Scan(
		&p.UniqueID,
		&p.Creator,
		&p.ExpiryTimestamp,
		&p.TotalPoolAmount,
		&p.Status,
		&winner,
		&p.NumOutcomes,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrExecuteQuery, err)
	}

	if winner.Valid {
		id := uint8(winner.Int16)
		p.WinningOutcome = &id
	}

	return &p, nil
}

func (s *PredictionStorage) GetAll() ([]types.PredictionRecord, error) {
	query := `
			SELECT unique_id, creator, expiry_timestamp, total_pool_amount, status, winning_outcome, num_outcomes
			FROM predictions ORDER BY expiry_timestamp DESC
		`

	rows, err := s.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrExecuteQuery, err)
	}
	defer rows.Close()

	var records []types.PredictionRecord
	for rows.Next() {
		var p types.PredictionRecord
		var winner sql.NullInt16

		if err := rows.Scan(
			&p.UniqueID,
			&p.Creator,
			&p.ExpiryTimestamp,
			&p.TotalPoolAmount,
			&p.Status,
			&winner,
			&p.NumOutcomes,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanData, err)
		}

		if winner.Valid {
			id := uint8(winner.Int16)
			p.WinningOutcome = &id
		}

		records = append(records, p)
	}

	return records, rows.Err()
}
