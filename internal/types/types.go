package types

import (
	"time"

	"github.com/iqbalbaharum/predictr-client/internal/coder"
)

// Trade is one transaction submitted through this client, persisted for the
// history view.
type Trade struct {
	TxID      string `json:"tx_id"`
	EventID   string `json:"event_id"`
	Action    string `json:"action"`
	OutcomeID uint8  `json:"outcome_id"`
	Amount    uint64 `json:"amount"`
	Signer    string `json:"signer"`
	Timestamp int64  `json:"timestamp"`
}

// PredictionRecord is the flattened row form of a decoded on-chain
// prediction.
type PredictionRecord struct {
	UniqueID        string `json:"unique_id"`
	Creator         string `json:"creator"`
	ExpiryTimestamp uint32 `json:"expiry_timestamp"`
	TotalPoolAmount uint64 `json:"total_pool_amount"`
	Status          uint8  `json:"status"`
	WinningOutcome  *uint8 `json:"winning_outcome,omitempty"`
	NumOutcomes     int    `json:"num_outcomes"`
}

// Snapshot is one poll of the on-chain state.
type Snapshot struct {
	Event     *coder.EventAccount `json:"event"`
	Token     *coder.TokenAccount `json:"token"`
	FetchedAt time.Time           `json:"fetched_at"`
}
