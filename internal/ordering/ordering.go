// Package ordering computes position assignments for todos. It owns the
// invariant that positions across the whole collection form the dense range
// 0..N-1: a permutation with no gaps and no duplicates. All functions work
// on in-memory snapshots and never touch the store.
package ordering

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/opravila/internal/model"
)

// Placement pairs a todo id with its requested position.
type Placement struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// Append returns the position for a newly created todo: the current count,
// so the new todo takes the top slot and positions stay 0..N-1.
func Append(count int) int {
	return count
}

// Compact returns the todos whose position must shift down to close the gap
// left by removing the todo at the given position. Every todo past the gap
// is decremented by one and gets its UpdatedAt refreshed; todos before the
// gap are unchanged and not returned, so callers persist only what moved.
func Compact(todos []model.Todo, removed int, now time.Time) []model.Todo {
	var shifted []model.Todo
	for _, todo := range todos {
		if todo.Position > removed {
			todo.Position--
			todo.UpdatedAt = now
			shifted = append(shifted, todo)
		}
	}
	return shifted
}

// Assign applies the requested placements to the given todos and returns the
// repositioned set, with UpdatedAt refreshed on each. Placements are bounded
// to the todos they name: anything not named keeps its position, so a caller
// that wants the whole collection reordered must name every todo. A
// placement referencing an id outside the set fails the entire assignment.
func Assign(todos []model.Todo, placements []Placement, now time.Time) ([]model.Todo, error) {
	byID := make(map[uuid.UUID]model.Todo, len(todos))
	for _, todo := range todos {
		byID[todo.ID] = todo
	}

	assigned := make([]model.Todo, 0, len(placements))
	for _, p := range placements {
		todo, ok := byID[p.ID]
		if !ok {
			return nil, fmt.Errorf("todo %s does not exist", p.ID)
		}
		todo.Position = p.Position
		todo.UpdatedAt = now
		assigned = append(assigned, todo)
	}
	return assigned, nil
}

// IsDense reports whether the positions form exactly the set {0..N-1}.
func IsDense(todos []model.Todo) bool {
	seen := make([]bool, len(todos))
	for _, todo := range todos {
		if todo.Position < 0 || todo.Position >= len(todos) || seen[todo.Position] {
			return false
		}
		seen[todo.Position] = true
	}
	return true
}

// SortByPosition orders todos by ascending position in place.
func SortByPosition(todos []model.Todo) {
	sort.Slice(todos, func(i, j int) bool {
		return todos[i].Position < todos[j].Position
	})
}
