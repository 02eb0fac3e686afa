// Package planner holds the day's hour-slot task board and the weekly habit
// tracker. Every mutation persists the whole collection.
package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/focusboard/internal/lines"
	"github.com/sandeepkv93/focusboard/internal/model"
)

var (
	ErrTaskNotFound = errors.New("planner: task not found")
	ErrHourTaken    = errors.New("planner: hour already has a task")
)

type TaskSaver interface {
	SaveTasks(ctx context.Context, tasks []model.Task) error
}

// DefaultTasks seeds an empty board.
func DefaultTasks() []model.Task {
	return []model.Task{
		{
			ID:      uuid.New().String(),
			Title:   "Morning Review",
			Hour:    9,
			Content: "- [ ] Review emails\n- [ ] Check calendar\n- [ ] Plan day\n- [ ] Set priorities",
		},
		{
			ID:      uuid.New().String(),
			Title:   "Project Planning",
			Hour:    10,
			Content: "- [ ] Define scope\n- [ ] Set milestones\n- [ ] Assign tasks\n- [ ] Schedule review",
		},
	}
}

type Board struct {
	mu     sync.RWMutex
	tasks  []model.Task
	active string
	saver  TaskSaver
}

// NewBoard takes ownership of tasks. saver may be nil.
func NewBoard(tasks []model.Task, saver TaskSaver) *Board {
	b := &Board{tasks: slices.Clone(tasks), saver: saver}
	b.sortLocked()
	return b
}

func (b *Board) Tasks() []model.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.tasks)
}

func (b *Board) TasksAt(hour int) []model.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Task, 0)
	for _, t := range b.tasks {
		if t.Hour == hour {
			out = append(out, t)
		}
	}
	return out
}

func (b *Board) Get(id string) (model.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.indexLocked(id)
	if i < 0 {
		return model.Task{}, false
	}
	return b.tasks[i], true
}

// Active returns the selected task, if any.
func (b *Board) Active() (model.Task, bool) {
	b.mu.RLock()
	id := b.active
	b.mu.RUnlock()
	if id == "" {
		return model.Task{}, false
	}
	return b.Get(id)
}

func (b *Board) SetActive(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id != "" && b.indexLocked(id) < 0 {
		return fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	b.active = id
	return nil
}

// AddTask creates a default task at hour and makes it active. An hour holds
// at most one task: when the slot is taken the existing task is returned with
// ErrHourTaken and the board is unchanged.
func (b *Board) AddTask(ctx context.Context, hour int) (model.Task, error) {
	task := model.NewTask(uuid.New().String(), hour)
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	b.mu.Lock()
	if i := b.hourIndexLocked(hour, ""); i >= 0 {
		existing := b.tasks[i]
		b.mu.Unlock()
		return existing, fmt.Errorf("%w: %02d:00", ErrHourTaken, hour)
	}
	b.tasks = append(b.tasks, task)
	b.sortLocked()
	b.active = task.ID
	snapshot := slices.Clone(b.tasks)
	b.mu.Unlock()
	return task, b.persist(ctx, snapshot)
}

// UpdateTask replaces the task with the same id.
func (b *Board) UpdateTask(ctx context.Context, task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	i := b.indexLocked(task.ID)
	if i < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrTaskNotFound, task.ID)
	}
	if b.hourIndexLocked(task.Hour, task.ID) >= 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %02d:00", ErrHourTaken, task.Hour)
	}
	b.tasks[i] = task
	b.sortLocked()
	snapshot := slices.Clone(b.tasks)
	b.mu.Unlock()
	return b.persist(ctx, snapshot)
}

// Rename reports false, leaving the title as it was, when title is blank.
func (b *Board) Rename(ctx context.Context, id, title string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, nil
	}
	task, ok := b.Get(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	task.Title = title
	return true, b.UpdateTask(ctx, task)
}

func (b *Board) SetNotes(ctx context.Context, id, notes string) error {
	task, ok := b.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	task.Notes = notes
	return b.UpdateTask(ctx, task)
}

// EditContent runs edit over the parsed content of task id and stores the
// serialized result.
func (b *Board) EditContent(ctx context.Context, id string, edit func([]lines.Line) []lines.Line) (model.Task, error) {
	task, ok := b.Get(id)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	task.Content = lines.Serialize(edit(lines.Parse(task.Content)))
	return task, b.UpdateTask(ctx, task)
}

// Submit records a manual submission for task id.
func (b *Board) Submit(id string, now time.Time) (model.Submission, error) {
	task, ok := b.Get(id)
	if !ok {
		return model.Submission{}, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	return model.Submission{
		ID:          uuid.New().String(),
		Title:       task.Title,
		Content:     []string{},
		Timestamp:   now,
		Duration:    0,
		Completed:   true,
		Questions:   []string{},
		TaskContent: task.Content,
	}, nil
}

func (b *Board) indexLocked(id string) int {
	return slices.IndexFunc(b.tasks, func(t model.Task) bool { return t.ID == id })
}

// hourIndexLocked finds the task at hour other than skipID.
func (b *Board) hourIndexLocked(hour int, skipID string) int {
	return slices.IndexFunc(b.tasks, func(t model.Task) bool { return t.Hour == hour && t.ID != skipID })
}

func (b *Board) sortLocked() {
	slices.SortStableFunc(b.tasks, func(x, y model.Task) int { return x.Hour - y.Hour })
}

func (b *Board) persist(ctx context.Context, tasks []model.Task) error {
	if b.saver == nil {
		return nil
	}
	if err := b.saver.SaveTasks(ctx, tasks); err != nil {
		return fmt.Errorf("planner: persist tasks: %w", err)
	}
	return nil
}
