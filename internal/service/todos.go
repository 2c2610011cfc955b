// Package service orchestrates the todo use cases over the store and the
// ordering engine. Not-found outcomes are reported as typed results (nil
// pointer or false), never as errors; errors always mean the store itself
// failed.
package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/opravila/internal/model"
	"github.com/erazemk/opravila/internal/ordering"
	"github.com/erazemk/opravila/internal/store"
)

// Service implements the todo use cases.
type Service struct {
	DB *sql.DB
}

// Update carries the optional fields of a partial update. A nil field
// leaves the stored value unchanged.
type Update struct {
	Name        *string
	Description *string
	Completed   *bool
}

// ListAll returns every todo ordered by ascending position.
func (s *Service) ListAll(ctx context.Context) ([]model.Todo, error) {
	todos, err := store.ListTodos(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// GetByID returns a todo by id, or nil if it does not exist.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	return store.GetTodo(ctx, s.DB, id)
}

// Create appends a new todo to the end of the list.
func (s *Service) Create(ctx context.Context, name string, description *string) (*model.Todo, error) {
	count, err := store.CountTodos(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	todo := &model.Todo{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Completed:   false,
		Position:    ordering.Append(count),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := store.CreateTodo(ctx, s.DB, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update merges the given fields into an existing todo. Whitespace-only
// name/description values count as absent, so a field cannot be blanked
// through an empty string. UpdatedAt is refreshed on every successful
// update, even when no field was sent. Returns false if the id does not
// resolve.
func (s *Service) Update(ctx context.Context, id uuid.UUID, fields Update) (bool, error) {
	todo, err := store.GetTodo(ctx, s.DB, id)
	if err != nil {
		return false, err
	}
	if todo == nil {
		return false, nil
	}

	if fields.Name != nil && strings.TrimSpace(*fields.Name) != "" {
		todo.Name = *fields.Name
	}
	if fields.Description != nil && strings.TrimSpace(*fields.Description) != "" {
		todo.Description = fields.Description
	}
	if fields.Completed != nil {
		todo.Completed = *fields.Completed
	}
	todo.UpdatedAt = time.Now().UTC()

	if err := store.UpdateTodo(ctx, s.DB, todo); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a todo and compacts the positions of the remaining ones,
// so they again form the dense range 0..N-2. Returns false if the id does
// not resolve.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	todo, err := store.GetTodo(ctx, s.DB, id)
	if err != nil {
		return false, err
	}
	if todo == nil {
		return false, nil
	}

	if err := store.DeleteTodo(ctx, s.DB, id); err != nil {
		return false, err
	}

	remaining, err := store.ListTodos(ctx, s.DB)
	if err != nil {
		return false, err
	}

	shifted := ordering.Compact(remaining, todo.Position, time.Now().UTC())
	if len(shifted) == 0 {
		return true, nil
	}
	if err := store.UpdateTodoPositions(ctx, s.DB, shifted); err != nil {
		return false, err
	}
	return true, nil
}

// Reorder assigns the requested positions to the named todos in one atomic
// bulk write. If any named id does not exist the whole operation fails and
// nothing is written. Todos not named in the request keep their positions,
// so a client that wants a full reorder must name the whole collection.
func (s *Service) Reorder(ctx context.Context, placements []ordering.Placement) (bool, error) {
	ids := make([]uuid.UUID, len(placements))
	for i, p := range placements {
		ids[i] = p.ID
	}

	todos, err := store.GetTodosByIDs(ctx, s.DB, ids)
	if err != nil {
		return false, err
	}
	if len(todos) != len(placements) {
		// At least one id is unknown: fail before any write.
		return false, nil
	}

	assigned, err := ordering.Assign(todos, placements, time.Now().UTC())
	if err != nil {
		return false, err
	}

	if err := store.UpdateTodoPositions(ctx, s.DB, assigned); err != nil {
		return false, err
	}
	return true, nil
}
