package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iqbalbaharum/predictr-client/internal/types"
)

const (
	KEY_SNAPSHOT = "predictr:snapshot:latest"

	// Snapshots are refreshed every poll; anything older than this is
	// considered stale and dropped.
	snapshotTTL = 5 * time.Minute
)

// SetLatestSnapshot caches the most recent decoded on-chain state.
func SetLatestSnapshot(client *redis.Client, snapshot *types.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return client.Set(context.Background(), KEY_SNAPSHOT, raw, snapshotTTL).Err()
}

// GetLatestSnapshot returns the cached snapshot, nil when none is cached.
func GetLatestSnapshot(client *redis.Client) (*types.Snapshot, error) {
	raw, err := client.Get(context.Background(), KEY_SNAPSHOT).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snapshot types.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
