package tracker

import (
	"encoding/json"
	"os"
	"time"

	"FxSentinel/internal/model"
)

// PairState is the last signal notified for one pair.
type PairState struct {
	SignalID   string          `json:"signal_id"`
	Direction  model.Direction `json:"direction"`
	Strength   model.Strength  `json:"strength"`
	Price      float64         `json:"price"`
	NotifiedAt time.Time       `json:"notified_at"`
	Count      int             `json:"count"` // notifications sent for this pair
}

// State is the persisted notification state of all pairs.
type State struct {
	Pairs     map[string]PairState `json:"pairs"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// LoadState reads the state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Pairs: map[string]PairState{}}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Pairs == nil {
		state.Pairs = map[string]PairState{}
	}
	return &state, nil
}

// SaveState writes the state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
