package service

import (
	"encoding/json"
	"fmt"

	"mapty/internal/modules/workout/domain"
)

// SnapshotKey is the storage key holding the serialized workout list.
const SnapshotKey = "workouts"

// EncodeSnapshot serializes the whole list as a JSON array of records.
func EncodeSnapshot(workouts []domain.Workout) (string, error) {
	records := make([]domain.Record, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, w.Record())
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal workouts: %w", err)
	}
	return string(payload), nil
}

// DecodeSnapshot rebuilds workouts from a snapshot. A payload that is not a
// JSON array fails as a whole; individual bad records are skipped and
// reported in skipped.
func DecodeSnapshot(payload string) (workouts []domain.Workout, skipped []error, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, nil, fmt.Errorf("decode workouts: %w", err)
	}
	workouts = make([]domain.Workout, 0, len(raw))
	for i, item := range raw {
		var rec domain.Record
		if err := json.Unmarshal(item, &rec); err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		w, err := domain.Rehydrate(rec)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts, skipped, nil
}
