package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"backend-workoutmap/internal/workout"
)

// DefaultKey is the key the workout list is stored under.
const DefaultKey = "workouts"

var ErrNotFound = errors.New("storage: key not found")

// KV is a whole-value key/value store. Get returns ErrNotFound for absent keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Service persists the full workout list under a single key.
type Service struct {
	kv     KV
	key    string
	logger *slog.Logger
}

func NewService(kv KV, key string) *Service {
	if key == "" {
		key = DefaultKey
	}
	return &Service{kv: kv, key: key, logger: slog.Default().With("component", "storage", "key", key)}
}

func (s *Service) Key() string {
	return s.key
}

// Save overwrites the stored list with workouts.
func (s *Service) Save(ctx context.Context, workouts []workout.Workout) error {
	payload, err := json.Marshal(workout.ToRecords(workouts))
	if err != nil {
		return fmt.Errorf("encode workouts: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, payload); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Load returns the stored list. An absent key and a value that cannot be
// decoded both yield an empty list and no error; only backend failures are
// returned.
func (s *Service) Load(ctx context.Context) ([]workout.Workout, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}

	workouts, err := decode(raw)
	if err != nil {
		s.logger.Warn("discarding stored workouts", "error", err)
		return nil, nil
	}
	return workouts, nil
}

// Clear removes the stored list.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete %s: %w", s.key, err)
	}
	return nil
}

func decode(raw []byte) ([]workout.Workout, error) {
	var records []workout.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	workouts := make([]workout.Workout, 0, len(records))
	for _, rec := range records {
		w, err := workout.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}
