package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/opravila/internal/model"
)

const todoColumns = "id, name, description, completed, position, created_at, updated_at"

// CreateTodo inserts a fully-populated todo row. The caller assigns the id,
// position, and timestamps.
func CreateTodo(ctx context.Context, db *sql.DB, todo *model.Todo) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO todos (`+todoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Name, todo.Description, todo.Completed, todo.Position,
		todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

// GetTodo returns a todo by ID, or nil if it does not exist.
func GetTodo(ctx context.Context, db *sql.DB, id uuid.UUID) (*model.Todo, error) {
	todo := &model.Todo{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ?`, id,
	).Scan(&todo.ID, &todo.Name, &description, &todo.Completed, &todo.Position,
		&todo.CreatedAt, &todo.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo: %w", err)
	}
	if description.Valid {
		todo.Description = &description.String
	}
	return todo, nil
}

// GetTodosByIDs returns the todos matching the given IDs. IDs that do not
// resolve to a row are silently skipped.
func GetTodosByIDs(ctx context.Context, db *sql.DB, ids []uuid.UUID) ([]model.Todo, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id IN (`+placeholders+`)`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("getting todos by ids: %w", err)
	}
	defer rows.Close()

	return scanTodos(rows)
}

// ListTodos returns all todos ordered by ascending position.
func ListTodos(ctx context.Context, db *sql.DB) ([]model.Todo, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	return scanTodos(rows)
}

// CountTodos returns the total number of todos.
func CountTodos(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting todos: %w", err)
	}
	return count, nil
}

// UpdateTodo persists all mutable fields of a todo.
func UpdateTodo(ctx context.Context, db *sql.DB, todo *model.Todo) error {
	_, err := db.ExecContext(ctx,
		`UPDATE todos SET name = ?, description = ?, completed = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		todo.Name, todo.Description, todo.Completed, todo.Position, todo.UpdatedAt, todo.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	return nil
}

// DeleteTodo removes a todo row.
func DeleteTodo(ctx context.Context, db *sql.DB, id uuid.UUID) error {
	_, err := db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return nil
}

// UpdateTodoPositions persists position and updated_at for every given todo
// in a single transaction. Either all rows are updated or none are: any
// failure, including a row that no longer exists, rolls the whole batch back.
func UpdateTodoPositions(ctx context.Context, db *sql.DB, todos []model.Todo) error {
	if len(todos) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning position update: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE todos SET position = ?, updated_at = ? WHERE id = ?`,
	)
	if err != nil {
		return fmt.Errorf("preparing position update: %w", err)
	}
	defer stmt.Close()

	for _, todo := range todos {
		result, err := stmt.ExecContext(ctx, todo.Position, todo.UpdatedAt, todo.ID)
		if err != nil {
			return fmt.Errorf("updating position of todo %s: %w", todo.ID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("updating position of todo %s: %w", todo.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("updating position of todo %s: no such row", todo.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing position update: %w", err)
	}
	return nil
}

// scanTodos reads all rows into a todo slice.
func scanTodos(rows *sql.Rows) ([]model.Todo, error) {
	var todos []model.Todo
	for rows.Next() {
		var todo model.Todo
		var description sql.NullString
		if err := rows.Scan(&todo.ID, &todo.Name, &description, &todo.Completed,
			&todo.Position, &todo.CreatedAt, &todo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		if description.Valid {
			todo.Description = &description.String
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}
