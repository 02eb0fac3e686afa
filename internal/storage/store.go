package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/sandeepkv93/focusboard/internal/model"
)

// Store keeps the dashboard state as JSON documents in a Repository. A
// document that cannot be decoded is logged and treated as absent, so the
// caller starts from defaults.
type Store struct {
	repo   Repository
	logger *slog.Logger
}

func NewStore(repo Repository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{repo: repo, logger: logger.With("component", "storage")}
}

func (s *Store) LoadSubmissions(ctx context.Context) ([]model.Submission, error) {
	var records []submissionRecord
	ok, err := s.loadJSON(ctx, KeySubmissions, &records)
	if err != nil || !ok {
		return []model.Submission{}, err
	}
	out := make([]model.Submission, 0, len(records))
	for _, r := range records {
		sub := model.Submission{
			ID:          r.ID,
			Title:       r.Title,
			Content:     r.Content,
			Timestamp:   r.Timestamp,
			Duration:    r.Duration,
			Completed:   r.Completed,
			Questions:   r.Questions,
			TaskContent: r.TaskContent,
		}
		if err := sub.Validate(); err != nil {
			s.logger.Warn("dropping invalid stored submission", "id", r.ID, "error", err)
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

func (s *Store) SaveSubmissions(ctx context.Context, subs []model.Submission) error {
	records := make([]submissionRecord, 0, len(subs))
	for _, sub := range subs {
		records = append(records, submissionRecord{
			ID:          sub.ID,
			Title:       sub.Title,
			Content:     nonNil(sub.Content),
			Timestamp:   sub.Timestamp,
			Duration:    sub.Duration,
			Completed:   sub.Completed,
			Questions:   nonNil(sub.Questions),
			TaskContent: sub.TaskContent,
		})
	}
	return s.saveJSON(ctx, KeySubmissions, records)
}

// ClearSubmissions removes the stored log. A log that was never written is
// already clear.
func (s *Store) ClearSubmissions(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeySubmissions); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("storage: delete %s: %w", KeySubmissions, err)
	}
	return nil
}

// LoadHabits returns the stored habits. ok is false when nothing usable is
// stored and the caller should seed from settings.
func (s *Store) LoadHabits(ctx context.Context) (habits []model.Habit, ok bool, err error) {
	var records []habitRecord
	found, err := s.loadJSON(ctx, KeyHabits, &records)
	if err != nil || !found {
		return nil, false, err
	}
	out := make([]model.Habit, 0, len(records))
	for _, r := range records {
		h := model.Habit{ID: r.ID, Name: r.Name, CompletedDays: r.CompletedDays}
		if err := h.Validate(); err != nil {
			s.logger.Warn("dropping invalid stored habit", "id", r.ID, "error", err)
			continue
		}
		out = append(out, h)
	}
	return out, true, nil
}

func (s *Store) SaveHabits(ctx context.Context, habits []model.Habit) error {
	records := make([]habitRecord, 0, len(habits))
	for _, h := range habits {
		records = append(records, habitRecord{ID: h.ID, Name: h.Name, CompletedDays: nonNil(h.CompletedDays)})
	}
	return s.saveJSON(ctx, KeyHabits, records)
}

func (s *Store) LoadTasks(ctx context.Context) ([]model.Task, error) {
	var records []taskRecord
	ok, err := s.loadJSON(ctx, KeyTasks, &records)
	if err != nil || !ok {
		return []model.Task{}, err
	}
	out := make([]model.Task, 0, len(records))
	for _, r := range records {
		task := model.Task{ID: r.ID, Title: r.Title, Hour: r.Hour, Content: r.Content, Notes: r.Notes, Completed: r.Completed}
		if err := task.Validate(); err != nil {
			s.logger.Warn("dropping invalid stored task", "id", r.ID, "error", err)
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (s *Store) SaveTasks(ctx context.Context, tasks []model.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, taskRecord{ID: t.ID, Title: t.Title, Hour: t.Hour, Content: t.Content, Notes: t.Notes, Completed: t.Completed})
	}
	return s.saveJSON(ctx, KeyTasks, records)
}

// LastSent returns the date of the last successful daily export, or "".
func (s *Store) LastSent(ctx context.Context) (string, error) {
	entry, err := s.repo.Get(ctx, KeyLastSent)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("storage: read %s: %w", KeyLastSent, err)
	}
	return string(entry.Value), nil
}

func (s *Store) SetLastSent(ctx context.Context, date string) error {
	if err := s.repo.Put(ctx, Entry{Key: KeyLastSent, Value: []byte(date)}); err != nil {
		return fmt.Errorf("storage: write %s: %w", KeyLastSent, err)
	}
	return nil
}

// Documents lists the raw stored documents, ordered by key.
func (s *Store) Documents(ctx context.Context, filter EntryListFilter) ([]Entry, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("storage: list documents: %w", err)
	}
	return entries, nil
}

func (s *Store) loadJSON(ctx context.Context, key string, dst any) (bool, error) {
	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("storage: read %s: %w", key, err)
	}
	if len(entry.Value) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(entry.Value, dst); err != nil {
		s.logger.Warn("ignoring corrupt stored document", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) saveJSON(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := s.repo.Put(ctx, Entry{Key: key, Value: payload}); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
