// Package taskboard implements the shared per-team task list with a
// claim/complete state machine enforcing single ownership.
//
// Tasks move pending -> in_progress -> completed. The transition into
// in_progress happens via claim and records the claimant; first claimer
// wins. Completion only requires in_progress status: the design does not
// restrict completion to the claimant.
//
// Each team's board is one JSON file mutated only inside the board's
// flock, so claims from independent processes serialize: of two
// concurrent claimants, exactly one observes pending.
package taskboard

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/openclaw/agent-teams/internal/errors"
	"github.com/openclaw/agent-teams/internal/storage"
)

// Board manages task boards on top of a storage.Store.
type Board struct {
	store *storage.Store
}

// NewBoard creates a Board backed by the given store.
func NewBoard(store *storage.Store) *Board {
	return &Board{store: store}
}

// boardKey returns the storage key for a team's task list.
func boardKey(team string) string {
	return team + "/tasks.json"
}

// lockName returns the lock protecting a team's task list.
func lockName(team string) string {
	return team + "/tasks"
}

// boardState is the serialized representation of one team's board.
type boardState struct {
	Tasks []Task `json:"tasks"`
}

// Create adds a task in pending status with the next sequential ID for
// the team: max existing ID + 1, or 1 for an empty board. IDs are never
// reused. assignTo/assignBy are advisory and may be empty.
func (b *Board) Create(team, subject, description, assignTo, assignBy string) (*Task, error) {
	var created Task
	err := b.store.WithLock(lockName(team), func() error {
		state, err := b.load(team)
		if err != nil {
			return err
		}

		nextID := 1
		for _, t := range state.Tasks {
			if t.ID >= nextID {
				nextID = t.ID + 1
			}
		}

		now := time.Now().UTC()
		created = Task{
			ID:          nextID,
			Subject:     subject,
			Description: description,
			Status:      StatusPending,
			AssignedTo:  assignTo,
			AssignedBy:  assignBy,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		state.Tasks = append(state.Tasks, created)
		return b.save(team, state)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Claim transitions a task from pending to in_progress, recording the
// claimant. The read-check-write runs inside the board's lock, so of two
// concurrent claimants exactly one succeeds; the other gets a
// ClaimConflictError reporting the current status.
func (b *Board) Claim(team string, id int, by string) (*Task, error) {
	var claimed Task
	err := b.store.WithLock(lockName(team), func() error {
		state, err := b.load(team)
		if err != nil {
			return err
		}

		idx := indexOf(state.Tasks, id)
		if idx < 0 {
			return errors.ErrTaskNotFound
		}

		task := &state.Tasks[idx]
		if task.Status != StatusPending {
			return errors.NewClaimConflictError(id, string(task.Status))
		}

		task.Status = StatusInProgress
		task.ClaimedBy = by
		task.UpdatedAt = time.Now().UTC()
		claimed = *task
		return b.save(team, state)
	})
	if err != nil {
		return nil, err
	}
	return &claimed, nil
}

// Complete transitions a task from in_progress to completed, storing the
// result. Any caller may complete an in-progress task, not only the
// claimant. Completion is irreversible.
func (b *Board) Complete(team string, id int, result string) (*Task, error) {
	var completed Task
	err := b.store.WithLock(lockName(team), func() error {
		state, err := b.load(team)
		if err != nil {
			return err
		}

		idx := indexOf(state.Tasks, id)
		if idx < 0 {
			return errors.ErrTaskNotFound
		}

		task := &state.Tasks[idx]
		if task.Status != StatusInProgress {
			return errors.NewCompletionError(id, string(task.Status))
		}

		task.Status = StatusCompleted
		task.Result = result
		task.UpdatedAt = time.Now().UTC()
		completed = *task
		return b.save(team, state)
	})
	if err != nil {
		return nil, err
	}
	return &completed, nil
}

// Get returns one task by ID.
func (b *Board) Get(team string, id int) (*Task, error) {
	state, err := b.load(team)
	if err != nil {
		return nil, err
	}
	idx := indexOf(state.Tasks, id)
	if idx < 0 {
		return nil, errors.ErrTaskNotFound
	}
	task := state.Tasks[idx]
	return &task, nil
}

// List returns the team's tasks ordered by ID ascending, optionally
// filtered by status. An empty filter returns everything.
func (b *Board) List(team string, filter Status) ([]Task, error) {
	state, err := b.load(team)
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(state.Tasks))
	for _, t := range state.Tasks {
		if filter == "" || t.Status == filter {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// indexOf returns the index of the task with the given ID, or -1.
func indexOf(tasks []Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// load reads a team's board, returning an empty board when none exists.
func (b *Board) load(team string) (*boardState, error) {
	data, err := b.store.Read(boardKey(team))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return &boardState{Tasks: []Task{}}, nil
		}
		return nil, err
	}

	var state boardState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.NewStorageError("parse task board for "+team, err)
	}
	if state.Tasks == nil {
		state.Tasks = []Task{}
	}
	return &state, nil
}

// save writes a team's board atomically.
func (b *Board) save(team string, state *boardState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.NewStorageError("marshal task board for "+team, err)
	}
	return b.store.Write(boardKey(team), data)
}
