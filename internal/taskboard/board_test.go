package taskboard

import (
	"sync"
	"testing"

	"github.com/openclaw/agent-teams/internal/errors"
	"github.com/openclaw/agent-teams/internal/storage"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return NewBoard(store)
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	board := newTestBoard(t)

	for want := 1; want <= 3; want++ {
		task, err := board.Create("ops", "task", "", "", "")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if task.ID != want {
			t.Errorf("ID = %d, want %d", task.ID, want)
		}
		if task.Status != StatusPending {
			t.Errorf("Status = %q, want pending", task.Status)
		}
		if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
			t.Error("timestamps should be set")
		}
	}
}

func TestCreate_IDsScopedPerTeam(t *testing.T) {
	board := newTestBoard(t)

	if _, err := board.Create("ops", "a", "", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	task, err := board.Create("dev", "b", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID != 1 {
		t.Errorf("first dev task ID = %d, want 1 (ids are team-scoped)", task.ID)
	}
}

func TestClaim(t *testing.T) {
	board := newTestBoard(t)

	if _, err := board.Create("ops", "build x", "", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	task, err := board.Claim("ops", 1, "worker")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if task.Status != StatusInProgress {
		t.Errorf("Status = %q, want in_progress", task.Status)
	}
	if task.ClaimedBy != "worker" {
		t.Errorf("ClaimedBy = %q, want worker", task.ClaimedBy)
	}
}

func TestClaim_ConflictReportsStatus(t *testing.T) {
	board := newTestBoard(t)

	if _, err := board.Create("ops", "build x", "", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := board.Claim("ops", 1, "worker"); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	_, err := board.Claim("ops", 1, "lead")
	var conflict *errors.ClaimConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ClaimConflictError, got %v", err)
	}
	if err.Error() != "Task 1 is in_progress, cannot claim" {
		t.Errorf("message = %q", err.Error())
	}

	// Claiming a completed task reports completed.
	if _, err := board.Complete("ops", 1, "done"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	_, err = board.Claim("ops", 1, "lead")
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ClaimConflictError, got %v", err)
	}
	if conflict.Status != "completed" {
		t.Errorf("Status = %q, want completed", conflict.Status)
	}
}

func TestClaim_Concurrent_FirstWins(t *testing.T) {
	board := newTestBoard(t)

	if _, err := board.Create("ops", "contested", "", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	const claimants = 8
	var mu sync.Mutex
	var winners, conflicts int
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := board.Claim("ops", 1, "claimant")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case errors.As(err, new(*errors.ClaimConflictError)):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("winners = %d, want exactly 1", winners)
	}
	if conflicts != claimants-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, claimants-1)
	}
}

func TestComplete(t *testing.T) {
	board := newTestBoard(t)

	if _, err := board.Create("ops", "build x", "", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Completing a pending task fails with the current status.
	_, err := board.Complete("ops", 1, "done")
	var completion *errors.CompletionError
	if !errors.As(err, &completion) {
		t.Fatalf("expected CompletionError, got %v", err)
	}
	if err.Error() != "Task 1 is pending, cannot complete" {
		t.Errorf("message = %q", err.Error())
	}

	if _, err := board.Claim("ops", 1, "worker"); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	task, err := board.Complete("ops", 1, "done")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if task.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed", task.Status)
	}
	if task.Result != "done" {
		t.Errorf("Result = %q, want done", task.Result)
	}

	// Completion is irreversible: a second complete fails.
	_, err = board.Complete("ops", 1, "again")
	if !errors.As(err, &completion) {
		t.Fatalf("expected CompletionError on re-complete, got %v", err)
	}
	if completion.Status != "completed" {
		t.Errorf("Status = %q, want completed", completion.Status)
	}
}

func TestComplete_NotRestrictedToClaimant(t *testing.T) {
	board := newTestBoard(t)

	if _, err := board.Create("ops", "shared", "", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := board.Claim("ops", 1, "worker"); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	// Any caller may complete; there is no claimant check.
	if _, err := board.Complete("ops", 1, "finished by lead"); err != nil {
		t.Fatalf("Complete by non-claimant: %v", err)
	}
}

func TestClaimComplete_TaskNotFound(t *testing.T) {
	board := newTestBoard(t)

	if _, err := board.Claim("ops", 42, "worker"); !errors.Is(err, errors.ErrTaskNotFound) {
		t.Errorf("Claim missing task: %v", err)
	}
	if _, err := board.Complete("ops", 42, "r"); !errors.Is(err, errors.ErrTaskNotFound) {
		t.Errorf("Complete missing task: %v", err)
	}
	if _, err := board.Get("ops", 42); !errors.Is(err, errors.ErrTaskNotFound) {
		t.Errorf("Get missing task: %v", err)
	}
}

func TestList(t *testing.T) {
	board := newTestBoard(t)

	if tasks, err := board.List("ops", ""); err != nil || len(tasks) != 0 {
		t.Fatalf("List on missing board = %v, %v", tasks, err)
	}

	for _, subject := range []string{"a", "b", "c"} {
		if _, err := board.Create("ops", subject, "", "", ""); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := board.Claim("ops", 2, "worker"); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	all, err := board.List("ops", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List = %d tasks, want 3", len(all))
	}
	for i, task := range all {
		if task.ID != i+1 {
			t.Errorf("tasks not ordered by id: %v", all)
		}
	}

	pending, err := board.List("ops", StatusPending)
	if err != nil {
		t.Fatalf("List pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending = %d tasks, want 2", len(pending))
	}

	inProgress, err := board.List("ops", StatusInProgress)
	if err != nil {
		t.Fatalf("List in_progress: %v", err)
	}
	if len(inProgress) != 1 || inProgress[0].ID != 2 {
		t.Errorf("in_progress = %v", inProgress)
	}
}

func TestScenario_FullLifecycle(t *testing.T) {
	board := newTestBoard(t)

	task, err := board.Create("ops", "build x", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID != 1 || task.Status != StatusPending {
		t.Fatalf("created task = %+v", task)
	}

	task, err = board.Claim("ops", 1, "worker")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if task.Status != StatusInProgress || task.ClaimedBy != "worker" {
		t.Fatalf("claimed task = %+v", task)
	}

	if _, err := board.Claim("ops", 1, "lead"); err == nil || err.Error() != "Task 1 is in_progress, cannot claim" {
		t.Fatalf("second claim = %v", err)
	}

	task, err = board.Complete("ops", 1, "done")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if task.Status != StatusCompleted || task.Result != "done" {
		t.Fatalf("completed task = %+v", task)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusCompleted} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("cancelled") {
		t.Error("ValidStatus(cancelled) = true")
	}
}
