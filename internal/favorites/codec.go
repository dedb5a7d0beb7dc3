package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultKeyPrefix namespaces per-user entries in a shared key-value store.
const DefaultKeyPrefix = "favorites_"

// StorageKey returns the durable key holding userID's favorites.
func StorageKey(prefix, userID string) string {
	return prefix + userID
}

// encodeIDs serialises the set as a JSON array, keeping insertion order.
func encodeIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encoding favorites: %w", err)
	}
	return data, nil
}

// decodeIDs parses a stored payload. The result never holds duplicates and
// keeps first-seen order. On error the caller falls back to an empty set.
func decodeIDs(data []byte) ([]string, error) {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding favorites: %w", err)
	}
	if raw == nil {
		return nil, errors.New("decoding favorites: payload is null")
	}

	ids := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
